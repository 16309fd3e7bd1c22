package ledger

import (
	"encoding/hex"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/blake2b"
)

// TxInput references an unspent output being consumed.
type TxInput struct {
	_      struct{} `cbor:",toarray"`
	TxHash []byte
	Index  uint32
}

// TxOutput pays an amount to an address, optionally locking it behind a
// datum hash.
type TxOutput struct {
	Address   []byte
	Amount    Value
	DatumHash []byte
}

// MarshalCBOR encodes the output as [address, amount] or
// [address, amount, datum_hash].
func (o *TxOutput) MarshalCBOR() ([]byte, error) {
	if len(o.DatumHash) == 0 {
		return cbor.Marshal([]interface{}{o.Address, o.Amount})
	}
	return cbor.Marshal([]interface{}{o.Address, o.Amount, o.DatumHash})
}

// TxBody is the signed portion of a transaction.
type TxBody struct {
	Inputs            []TxInput   `cbor:"0,keyasint"`
	Outputs           []*TxOutput `cbor:"1,keyasint"`
	Fee               uint64      `cbor:"2,keyasint"`
	AuxiliaryDataHash []byte      `cbor:"7,keyasint,omitempty"`
}

// Hash returns the blake2b-256 hash of the body, which is both the message
// signed by witnesses and the transaction id.
func (b *TxBody) Hash() ([]byte, error) {
	encoded, err := cbor.Marshal(b)
	if err != nil {
		return nil, err
	}
	sum := blake2b.Sum256(encoded)
	return sum[:], nil
}

// Id returns the hex transaction id.
func (b *TxBody) Id() (string, error) {
	hash, err := b.Hash()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(hash), nil
}

// VKeyWitness pairs a verification key with its signature over the body hash.
type VKeyWitness struct {
	_         struct{} `cbor:",toarray"`
	VKey      []byte
	Signature []byte
}

// WitnessSet carries the verification key witnesses.
type WitnessSet struct {
	VKeys []VKeyWitness `cbor:"0,keyasint,omitempty"`
}

// Metadata is transaction auxiliary data keyed by metadata label.
type Metadata map[uint64]interface{}

// Hash returns the auxiliary data hash committed in the body.
func (m Metadata) Hash() ([]byte, error) {
	encoded, err := cbor.Marshal(m)
	if err != nil {
		return nil, err
	}
	sum := blake2b.Sum256(encoded)
	return sum[:], nil
}

// Tx is a complete signed transaction.
type Tx struct {
	_             struct{} `cbor:",toarray"`
	Body          *TxBody
	WitnessSet    WitnessSet
	IsValid       bool
	AuxiliaryData Metadata
}

// Bytes returns the CBOR encoding submitted to the chain.
func (t *Tx) Bytes() ([]byte, error) {
	return cbor.Marshal(t)
}

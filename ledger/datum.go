package ledger

import (
	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/blake2b"
)

// plutusConstrTagBase is the CBOR tag for Plutus constructor 0. Constructors
// 0 through 6 map to tags 121 through 127.
const plutusConstrTagBase = 121

// ContractDatum is the Plutus datum locked with the contract payment. Field
// order and presence are part of the on-chain wire format, the contract
// rejects anything else.
type ContractDatum struct {
	PayerAddress    []byte
	ProviderAddress []byte
	Signature       []byte
	OracleMessage   []byte
	DeadlineSlot    uint64
	Timeout         uint64 // carried on chain, not read by the contract
	Ntx             uint64
}

// MarshalCBOR encodes the datum as Plutus constructor 0 over the ordered
// field list.
func (d *ContractDatum) MarshalCBOR() ([]byte, error) {
	fields := []interface{}{
		nonNil(d.PayerAddress),
		nonNil(d.ProviderAddress),
		nonNil(d.Signature),
		nonNil(d.OracleMessage),
		d.DeadlineSlot,
		d.Timeout,
		d.Ntx,
	}
	return cbor.Marshal(cbor.Tag{Number: plutusConstrTagBase, Content: fields})
}

// Hash returns the blake2b-256 datum hash referenced by the paying output.
func (d *ContractDatum) Hash() ([]byte, error) {
	encoded, err := cbor.Marshal(d)
	if err != nil {
		return nil, err
	}
	sum := blake2b.Sum256(encoded)
	return sum[:], nil
}

func nonNil(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}

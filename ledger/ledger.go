package ledger

// ChainContext is the boundary to a Cardano node or node API. Implementations
// wrap whatever backend provides chain state (Blockfrost, Ogmios, a local
// node); this package only depends on the queries below.
type ChainContext interface {
	// LastBlockSlot returns the absolute slot of the chain tip.
	LastBlockSlot() (uint64, error)
	// ProtocolParams returns the fee parameters currently in effect.
	ProtocolParams() (*ProtocolParams, error)
	// UTxOs lists the unspent outputs at a bech32 address.
	UTxOs(address string) ([]UTxO, error)
	// SubmitTx submits a CBOR-encoded signed transaction.
	SubmitTx(txBytes []byte) error
}

// Signer signs a transaction body hash. Key derivation happens outside this
// module; a Signer is handed in fully initialized.
type Signer interface {
	// VerificationKey returns the raw Ed25519 verification key bytes.
	VerificationKey() []byte
	// Sign signs the given transaction body hash.
	Sign(message []byte) ([]byte, error)
}

// ProtocolParams holds the linear fee parameters, fee = MinFeeA*size + MinFeeB.
type ProtocolParams struct {
	MinFeeA uint64
	MinFeeB uint64
}

// UTxO is one unspent output at an address.
type UTxO struct {
	TxHash string
	Index  uint32
	Value  Value
}

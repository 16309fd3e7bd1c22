package ledger

import (
	"encoding/hex"
	"testing"

	"github.com/fxamacker/cbor/v2"
)

func testDatum(t *testing.T) *ContractDatum {
	t.Helper()
	payer, err := DecodeAddress(testPayerAddr)
	if err != nil {
		t.Fatal(err)
	}
	provider, err := DecodeAddress(testProviderAddr)
	if err != nil {
		t.Fatal(err)
	}
	return &ContractDatum{
		PayerAddress:    payer.PaymentKeyHash(),
		ProviderAddress: provider.PaymentKeyHash(),
		Signature:       []byte{0xab, 0x12},
		OracleMessage:   []byte("abc"),
		DeadlineSlot:    1086400,
		Timeout:         10,
		Ntx:             1,
	}
}

// The wire format is constructor tag 121 over the ordered seven-field array.
// Anything else is rejected by the on-chain validator.
func TestContractDatumWireFormat(t *testing.T) {
	want := "d87987" + // tag 121, array(7)
		"581c0102030405060708090a0b0c0d0e0f101112131415161718191a1b1c" +
		"581c65666768696a6b6c6d6e6f707172737475767778797a7b7c7d7e7f80" +
		"42ab12" +
		"43616263" +
		"1a001093c0" +
		"0a" +
		"01"

	encoded, err := cbor.Marshal(testDatum(t))
	if err != nil {
		t.Fatal(err)
	}
	if got := hex.EncodeToString(encoded); got != want {
		t.Errorf("datum cbor = %s\nwant %s", got, want)
	}
}

func TestContractDatumHash(t *testing.T) {
	hash, err := testDatum(t).Hash()
	if err != nil {
		t.Fatal(err)
	}
	want := "95b3802293004256846e9976545465063b82af69f039fece46cd0e8eb971bf2b"
	if got := hex.EncodeToString(hash); got != want {
		t.Errorf("datum hash = %s, want %s", got, want)
	}
}

func TestContractDatumNilBytes(t *testing.T) {
	datum := &ContractDatum{DeadlineSlot: 1, Timeout: 10, Ntx: 1}
	encoded, err := cbor.Marshal(datum)
	if err != nil {
		t.Fatal(err)
	}
	// nil byte fields encode as empty byte strings, not null
	want := "d879874040404001" + "0a" + "01"
	if got := hex.EncodeToString(encoded); got != want {
		t.Errorf("datum cbor = %s, want %s", got, want)
	}
}

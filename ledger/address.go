package ledger

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

// AddressError reports a textual address that could not be decoded.
type AddressError struct {
	Address string
	Reason  string
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("invalid address %q: %s", e.Address, e.Reason)
}

// Address is a decoded Cardano address. Bytes holds the full address payload
// including the header byte.
type Address struct {
	Hrp   string
	Bytes []byte
}

// DecodeAddress decodes a bech32 Cardano address.
func DecodeAddress(addr string) (*Address, error) {
	hrp, data, err := bech32.DecodeNoLimit(addr)
	if err != nil {
		return nil, &AddressError{Address: addr, Reason: err.Error()}
	}
	if hrp != "addr" && hrp != "addr_test" {
		return nil, &AddressError{Address: addr, Reason: fmt.Sprintf("unexpected prefix %q", hrp)}
	}
	payload, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return nil, &AddressError{Address: addr, Reason: err.Error()}
	}
	if len(payload) < 29 {
		return nil, &AddressError{Address: addr, Reason: fmt.Sprintf("payload too short: %d bytes", len(payload))}
	}
	return &Address{Hrp: hrp, Bytes: payload}, nil
}

// PaymentKeyHash returns the 28-byte payment part of the address.
func (a *Address) PaymentKeyHash() []byte {
	return a.Bytes[1:29]
}

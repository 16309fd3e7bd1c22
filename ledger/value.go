package ledger

import (
	"encoding/hex"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/xerrors"
)

// MultiAsset maps hex policy id to hex asset name to quantity.
type MultiAsset map[string]map[string]uint64

// Value is an amount of lovelace plus optional native assets.
type Value struct {
	Coin   uint64
	Assets MultiAsset
}

// MarshalCBOR encodes the value in the Cardano wire form: a plain unsigned
// integer when only lovelace is present, otherwise [coin, multiasset] with
// byte-string keys.
func (v Value) MarshalCBOR() ([]byte, error) {
	if len(v.Assets) == 0 {
		return cbor.Marshal(v.Coin)
	}
	assets := make(map[cbor.ByteString]map[cbor.ByteString]uint64, len(v.Assets))
	for policy, names := range v.Assets {
		policyBytes, err := hex.DecodeString(policy)
		if err != nil {
			return nil, xerrors.Errorf("invalid policy id %s: %w", policy, err)
		}
		inner := make(map[cbor.ByteString]uint64, len(names))
		for name, quantity := range names {
			nameBytes, err := hex.DecodeString(name)
			if err != nil {
				return nil, xerrors.Errorf("invalid asset name %s: %w", name, err)
			}
			inner[cbor.ByteString(nameBytes)] = quantity
		}
		assets[cbor.ByteString(policyBytes)] = inner
	}
	return cbor.Marshal([]interface{}{v.Coin, assets})
}

// Add returns the element-wise sum of two values.
func (v Value) Add(other Value) Value {
	out := Value{Coin: v.Coin + other.Coin, Assets: MultiAsset{}}
	for _, src := range []MultiAsset{v.Assets, other.Assets} {
		for policy, names := range src {
			if out.Assets[policy] == nil {
				out.Assets[policy] = map[string]uint64{}
			}
			for name, quantity := range names {
				out.Assets[policy][name] += quantity
			}
		}
	}
	if len(out.Assets) == 0 {
		out.Assets = nil
	}
	return out
}

// Covers reports whether v holds at least as much of everything as other.
func (v Value) Covers(other Value) bool {
	if v.Coin < other.Coin {
		return false
	}
	for policy, names := range other.Assets {
		for name, quantity := range names {
			if v.Assets[policy][name] < quantity {
				return false
			}
		}
	}
	return true
}

// Sub returns v minus other, dropping assets that reach zero. The caller
// must have checked Covers first.
func (v Value) Sub(other Value) Value {
	out := Value{Coin: v.Coin - other.Coin, Assets: MultiAsset{}}
	for policy, names := range v.Assets {
		for name, quantity := range names {
			remaining := quantity - other.Assets[policy][name]
			if remaining == 0 {
				continue
			}
			if out.Assets[policy] == nil {
				out.Assets[policy] = map[string]uint64{}
			}
			out.Assets[policy][name] = remaining
		}
	}
	if len(out.Assets) == 0 {
		out.Assets = nil
	}
	return out
}

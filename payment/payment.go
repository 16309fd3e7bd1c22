// Package payment turns a confirmed job configuration into a signed,
// submitted contract payment on Cardano.
package payment

import (
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/filswan/go-mcs-sdk/mcs/api/common/logs"
	"golang.org/x/xerrors"

	"github.com/nunet/go-nunet/build"
	"github.com/nunet/go-nunet/constants"
	"github.com/nunet/go-nunet/ledger"
	"github.com/nunet/go-nunet/models"
)

// Kind classifies a payment failure so callers can decide what to do with it.
type Kind string

const (
	KindAddress           Kind = "address"
	KindBuild             Kind = "build"
	KindInsufficientFunds Kind = "insufficient-funds"
	KindSubmit            Kind = "submit"
)

// PaymentError wraps a transaction build, sign or submit failure.
type PaymentError struct {
	Kind Kind
	Err  error
}

func (e *PaymentError) Error() string {
	return fmt.Sprintf("payment failed (%s): %v", e.Kind, e.Err)
}

func (e *PaymentError) Unwrap() error {
	return e.Err
}

// minChangeLovelace is the minimum lovelace a change output must carry.
const minChangeLovelace = 1_000_000

// witnessSizeAllowance covers the vkey witness bytes missing from the draft
// transaction when the fee is sized.
const witnessSizeAllowance = 110

// Cost calculates the contract payment for a job: the base fee plus the
// estimated price scaled to lovelace, truncated, with the fixed mNTX amount
// attached to the same output.
func Cost(jobConfig *models.JobConfig) ledger.Value {
	return ledger.Value{
		Coin: uint64(constants.BaseFeeLovelace + float64(constants.PriceScaleLovelace)*jobConfig.EstimatedPrice),
		Assets: ledger.MultiAsset{
			constants.MntxPolicyId: {
				constants.MntxAssetName: constants.MntxAmount,
			},
		},
	}
}

// Builder assembles and submits contract payments for one payer.
type Builder struct {
	Context       ledger.ChainContext
	Signer        ledger.Signer
	PayerAddress  string
	ScriptAddress string
}

// NewBuilder creates a payment builder paying from payerAddress to the
// default contract address.
func NewBuilder(context ledger.ChainContext, signer ledger.Signer, payerAddress string) *Builder {
	return &Builder{
		Context:       context,
		Signer:        signer,
		PayerAddress:  payerAddress,
		ScriptAddress: constants.ScriptAddress,
	}
}

// BuildAndSubmit pays the contract for the job and returns the transaction
// id. It builds the contract datum from the job configuration, locks the job
// cost at the script address, signs with the payer key and submits. Nothing
// is retried; the caller owns retry policy.
func (b *Builder) BuildAndSubmit(jobConfig *models.JobConfig) (string, error) {
	payer, err := ledger.DecodeAddress(b.PayerAddress)
	if err != nil {
		return "", &PaymentError{Kind: KindAddress, Err: err}
	}
	provider, err := ledger.DecodeAddress(jobConfig.ComputeProviderAddr)
	if err != nil {
		return "", &PaymentError{Kind: KindAddress, Err: err}
	}
	script, err := ledger.DecodeAddress(b.ScriptAddress)
	if err != nil {
		return "", &PaymentError{Kind: KindAddress, Err: err}
	}
	signature, err := hex.DecodeString(jobConfig.Signature)
	if err != nil {
		return "", &PaymentError{Kind: KindBuild, Err: xerrors.Errorf("invalid oracle signature: %w", err)}
	}

	lastSlot, err := b.Context.LastBlockSlot()
	if err != nil {
		return "", &PaymentError{Kind: KindBuild, Err: xerrors.Errorf("failed query chain tip: %w", err)}
	}
	params, err := b.Context.ProtocolParams()
	if err != nil {
		return "", &PaymentError{Kind: KindBuild, Err: xerrors.Errorf("failed query protocol params: %w", err)}
	}

	datum := &ledger.ContractDatum{
		PayerAddress:    payer.PaymentKeyHash(),
		ProviderAddress: provider.PaymentKeyHash(),
		Signature:       signature,
		OracleMessage:   []byte(jobConfig.OracleMessage),
		DeadlineSlot:    lastSlot + constants.DeadlineSlots,
		Timeout:         constants.DatumTimeout,
		Ntx:             constants.DatumNtx,
	}
	datumHash, err := datum.Hash()
	if err != nil {
		return "", &PaymentError{Kind: KindBuild, Err: err}
	}

	metadata := ledger.Metadata{
		constants.MetadataLabel: map[string]interface{}{
			"msg": []string{fmt.Sprintf("go-nunet: %s", build.UserVersion())},
		},
	}
	metadataHash, err := metadata.Hash()
	if err != nil {
		return "", &PaymentError{Kind: KindBuild, Err: err}
	}

	amount := Cost(jobConfig)

	utxos, err := b.Context.UTxOs(b.PayerAddress)
	if err != nil {
		return "", &PaymentError{Kind: KindBuild, Err: xerrors.Errorf("failed list utxos: %w", err)}
	}

	buildBody := func(fee uint64) (*ledger.TxBody, error) {
		inputs, total, err := selectInputs(utxos, amount, fee)
		if err != nil {
			return nil, err
		}
		change := total.Sub(amount)
		change.Coin -= fee
		return &ledger.TxBody{
			Inputs: inputs,
			Outputs: []*ledger.TxOutput{
				{Address: script.Bytes, Amount: amount, DatumHash: datumHash},
				{Address: payer.Bytes, Amount: change},
			},
			Fee:               fee,
			AuxiliaryDataHash: metadataHash,
		}, nil
	}

	// Size the fee on a zero-fee draft, then rebuild once with the real fee.
	draft, err := buildBody(0)
	if err != nil {
		return "", err
	}
	fee, err := estimateFee(draft, metadata, params)
	if err != nil {
		return "", &PaymentError{Kind: KindBuild, Err: err}
	}
	body, err := buildBody(fee)
	if err != nil {
		return "", err
	}

	bodyHash, err := body.Hash()
	if err != nil {
		return "", &PaymentError{Kind: KindBuild, Err: err}
	}
	witnessSignature, err := b.Signer.Sign(bodyHash)
	if err != nil {
		return "", &PaymentError{Kind: KindBuild, Err: xerrors.Errorf("failed sign transaction: %w", err)}
	}

	tx := &ledger.Tx{
		Body: body,
		WitnessSet: ledger.WitnessSet{
			VKeys: []ledger.VKeyWitness{{VKey: b.Signer.VerificationKey(), Signature: witnessSignature}},
		},
		IsValid:       true,
		AuxiliaryData: metadata,
	}
	txBytes, err := tx.Bytes()
	if err != nil {
		return "", &PaymentError{Kind: KindBuild, Err: err}
	}

	if err := b.Context.SubmitTx(txBytes); err != nil {
		return "", &PaymentError{Kind: KindSubmit, Err: err}
	}

	txId, err := body.Id()
	if err != nil {
		return "", &PaymentError{Kind: KindBuild, Err: err}
	}
	logs.GetLogger().Infof("contract payment submitted, tx: %s, amount: %d lovelace", txId, amount.Coin)
	return txId, nil
}

// selectInputs picks utxos largest-first until the payment amount, the fee
// and a minimum change output are covered.
func selectInputs(utxos []ledger.UTxO, amount ledger.Value, fee uint64) ([]ledger.TxInput, ledger.Value, error) {
	sorted := make([]ledger.UTxO, len(utxos))
	copy(sorted, utxos)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Value.Coin > sorted[j].Value.Coin
	})

	target := amount
	target.Coin += fee + minChangeLovelace

	var inputs []ledger.TxInput
	var total ledger.Value
	for _, utxo := range sorted {
		txHash, err := hex.DecodeString(utxo.TxHash)
		if err != nil {
			return nil, ledger.Value{}, &PaymentError{Kind: KindBuild, Err: xerrors.Errorf("invalid utxo hash %s: %w", utxo.TxHash, err)}
		}
		inputs = append(inputs, ledger.TxInput{TxHash: txHash, Index: utxo.Index})
		total = total.Add(utxo.Value)
		if total.Covers(target) {
			return inputs, total, nil
		}
	}
	return nil, ledger.Value{}, &PaymentError{
		Kind: KindInsufficientFunds,
		Err:  xerrors.Errorf("address holds %d lovelace, need at least %d plus %d mNTX", total.Coin, target.Coin, constants.MntxAmount),
	}
}

// estimateFee applies the linear fee formula to the draft transaction size
// plus the witness allowance.
func estimateFee(body *ledger.TxBody, metadata ledger.Metadata, params *ledger.ProtocolParams) (uint64, error) {
	draft := &ledger.Tx{Body: body, IsValid: true, AuxiliaryData: metadata}
	draftBytes, err := draft.Bytes()
	if err != nil {
		return 0, err
	}
	size := uint64(len(draftBytes) + witnessSizeAllowance)
	return params.MinFeeA*size + params.MinFeeB, nil
}

// Package adapter is the main way to configure and run jobs on NuNet. A
// NuNetAdapter sequences the job lifecycle: request a matching provider, pay
// the contract, then stream execution status until the job completes.
package adapter

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/xerrors"

	"github.com/nunet/go-nunet/conf"
	"github.com/nunet/go-nunet/constants"
	"github.com/nunet/go-nunet/ledger"
	"github.com/nunet/go-nunet/models"
	"github.com/nunet/go-nunet/payment"
)

// NuNetAdapter submits jobs to a DMS node and pays for them on Cardano. The
// three lifecycle calls compose caller-driven: RequestService, Pay, Job. Each
// call is a single attempt, retry policy belongs to the caller.
type NuNetAdapter struct {
	Host       string
	UseTLS     bool
	HttpClient *http.Client
	Payer      *payment.Builder
}

// NewAdapter creates an adapter talking to the given DMS host. Payments
// require a payer, see WithPayer.
func NewAdapter(host string, useTLS bool) *NuNetAdapter {
	return &NuNetAdapter{
		Host:       host,
		UseTLS:     useTLS,
		HttpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// NewAdapterFromConfig creates an adapter from the loaded config file.
func NewAdapterFromConfig() *NuNetAdapter {
	cfg := conf.GetConfig()
	return NewAdapter(cfg.DMS.Host, cfg.DMS.UseTLS)
}

// WithPayer attaches the payment identity. The signer and chain context are
// already-resolved inputs, key handling stays outside this module.
func (a *NuNetAdapter) WithPayer(context ledger.ChainContext, signer ledger.Signer, payerAddress string) *NuNetAdapter {
	a.Payer = payment.NewBuilder(context, signer, payerAddress)
	if cfg := conf.GetConfig(); cfg != nil && cfg.LEDGER.ScriptAddress != "" {
		a.Payer.ScriptAddress = cfg.LEDGER.ScriptAddress
	}
	return a
}

func (a *NuNetAdapter) httpURL(path string) string {
	scheme := "http"
	if a.UseTLS {
		scheme = "https"
	}
	return (&url.URL{Scheme: scheme, Host: a.Host, Path: path}).String()
}

func (a *NuNetAdapter) wsURL(path string) string {
	scheme := "ws"
	if a.UseTLS {
		scheme = "wss"
	}
	return (&url.URL{Scheme: scheme, Host: a.Host, Path: path}).String()
}

// PeerList returns the peers the DMS node knows about, with all available
// information about each peer.
func (a *NuNetAdapter) PeerList() (models.PeerList, error) {
	resp, err := a.HttpClient.Get(a.httpURL(constants.PEERS_PATH))
	if err != nil {
		return nil, xerrors.Errorf("failed query peers: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, xerrors.Errorf("failed read peers response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, xerrors.Errorf("peers endpoint returned status %d: %s", resp.StatusCode, string(body))
	}

	var peers models.PeerList
	if err := json.Unmarshal(body, &peers); err != nil {
		return nil, &ParseError{What: "peer list", Err: err}
	}
	return peers, nil
}

// RequestService asks the DMS for a provider matching the job requirements.
// This is the first step of a submission; the returned configuration carries
// the assigned provider, the price and the oracle authorization.
func (a *NuNetAdapter) RequestService(jobRequest *models.JobRequest) (*models.JobConfig, error) {
	if err := jobRequest.Validate(); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(jobRequest)
	if err != nil {
		return nil, xerrors.Errorf("failed marshal job request: %w", err)
	}

	req, err := http.NewRequest("POST", a.httpURL(constants.REQUEST_SERVICE_PATH), bytes.NewBuffer(payload))
	if err != nil {
		return nil, xerrors.Errorf("failed create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.HttpClient.Do(req)
	if err != nil {
		return nil, xerrors.Errorf("failed send job request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, xerrors.Errorf("failed read match response: %w", err)
	}
	if resp.StatusCode/100 != 2 {
		return nil, &MatchError{Status: resp.StatusCode, Body: string(body)}
	}

	var jobConfig models.JobConfig
	if err := json.Unmarshal(body, &jobConfig); err != nil {
		return nil, &ParseError{What: "job config", Err: err}
	}
	return &jobConfig, nil
}

// Pay sends the contract payment for a matched job and returns the
// transaction id. The payment must confirm before the job is submitted,
// because job submission references the transaction id.
func (a *NuNetAdapter) Pay(jobConfig *models.JobConfig) (string, error) {
	if a.Payer == nil {
		return "", xerrors.New("adapter has no payer, call WithPayer first")
	}
	return a.Payer.BuildAndSubmit(jobConfig)
}

// Terminate sends a one-shot job termination signal on a fresh connection.
func (a *NuNetAdapter) Terminate() error {
	return sendTermination(a.wsURL(constants.DEPLOY_PATH))
}

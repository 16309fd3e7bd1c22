package adapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nunet/go-nunet/constants"
	"github.com/nunet/go-nunet/models"
)

func testAdapter(server *httptest.Server) *NuNetAdapter {
	return NewAdapter(strings.TrimPrefix(server.URL, "http://"), false)
}

func validJobRequest(t *testing.T) *models.JobRequest {
	t.Helper()
	jobRequest, err := models.NewJobRequest("addr_test1xyz", 10, models.ServiceTypeCpu, models.JobParams{
		MachineType: models.MachineTypeCpu,
		ImageId:     models.ImageMlOnCpu,
		ModelUrl:    "https://example.com/model.py",
	}, models.ConstraintsLow)
	if err != nil {
		t.Fatal(err)
	}
	return jobRequest
}

func TestRequestService(t *testing.T) {
	var received models.JobRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != constants.REQUEST_SERVICE_PATH {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Method != "POST" {
			t.Errorf("method = %s", r.Method)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type = %s", got)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &received); err != nil {
			t.Errorf("request body does not parse: %v", err)
		}
		w.Write([]byte(`{"compute_provider_addr":"addrProv","estimated_price":0.5,"oracle_message":"abc","signature":"ab12"}`))
	}))
	defer server.Close()

	jobConfig, err := testAdapter(server).RequestService(validJobRequest(t))
	if err != nil {
		t.Fatal(err)
	}

	if received.MaxNtx != 10 || received.Blockchain != models.BlockchainCardano {
		t.Errorf("posted request = %+v", received)
	}
	if jobConfig.ComputeProviderAddr != "addrProv" {
		t.Errorf("ComputeProviderAddr = %s", jobConfig.ComputeProviderAddr)
	}
	if jobConfig.EstimatedPrice != 0.5 {
		t.Errorf("EstimatedPrice = %v", jobConfig.EstimatedPrice)
	}
	if !bytes.Equal([]byte(jobConfig.OracleMessage), []byte("abc")) {
		t.Errorf("OracleMessage = %v, want utf-8 of abc", []byte(jobConfig.OracleMessage))
	}
}

func TestRequestServiceMatchError(t *testing.T) {
	const responseBody = `no peers match the requested constraints`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(responseBody))
	}))
	defer server.Close()

	_, err := testAdapter(server).RequestService(validJobRequest(t))
	var matchErr *MatchError
	if !errors.As(err, &matchErr) {
		t.Fatalf("RequestService = %v, want *MatchError", err)
	}
	if matchErr.Status != http.StatusServiceUnavailable {
		t.Errorf("Status = %d", matchErr.Status)
	}
	if matchErr.Body != responseBody {
		t.Errorf("Body = %q, want response text verbatim", matchErr.Body)
	}
}

func TestRequestServiceParseError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`this is not json`))
	}))
	defer server.Close()

	_, err := testAdapter(server).RequestService(validJobRequest(t))
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("RequestService = %v, want *ParseError", err)
	}
}

func TestRequestServiceRejectsInvalidRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid request must not reach the DMS")
	}))
	defer server.Close()

	jobRequest := validJobRequest(t)
	jobRequest.Params.ModelUrl = ""

	_, err := testAdapter(server).RequestService(jobRequest)
	var validationErr *models.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("RequestService = %v, want *models.ValidationError", err)
	}
	if validationErr.Field != "params.model_url" {
		t.Errorf("Field = %q", validationErr.Field)
	}
}

func TestPeerList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != constants.PEERS_PATH {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`[{
			"peer_id": "Qm123",
			"has_gpu": true,
			"allow_cardano": true,
			"gpu_info": [{"name": "RTX 3090", "tot_vram": 24000, "free_vram": 20000}],
			"tokenomics_addrs": "addr_test1xyz",
			"tokenomics_blockchain": "Cardano",
			"available_resources": {"id": 1, "tot_cpu_hz": 24000, "price_cpu": 1, "ram": 64000, "price_ram": 1, "vcpu": 12, "disk": 500, "price_disk": 1},
			"services": []
		}]`))
	}))
	defer server.Close()

	peers, err := testAdapter(server).PeerList()
	if err != nil {
		t.Fatal(err)
	}
	if len(peers) != 1 {
		t.Fatalf("got %d peers, want 1", len(peers))
	}
	peer := peers[0]
	if peer.PeerId != "Qm123" || !peer.HasGpu || !peer.AllowCardano {
		t.Errorf("peer = %+v", peer)
	}
	if len(peer.GpuInfo) != 1 || peer.GpuInfo[0].TotVram != 24000 {
		t.Errorf("gpu info = %+v", peer.GpuInfo)
	}
	if peer.AvailableResources.Vcpu != 12 {
		t.Errorf("resources = %+v", peer.AvailableResources)
	}
}

func TestPeerListParseError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not": "an array"}`))
	}))
	defer server.Close()

	_, err := testAdapter(server).PeerList()
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("PeerList = %v, want *ParseError", err)
	}
}

func TestPayWithoutPayer(t *testing.T) {
	adapter := NewAdapter("localhost:9999", false)
	if _, err := adapter.Pay(&models.JobConfig{}); err == nil {
		t.Fatal("Pay without payer should fail")
	}
}

package models

import (
	"encoding/json"
	"fmt"
)

// MachineType selects the hardware class a job runs on.
type MachineType string

const (
	MachineTypeCpu MachineType = "cpu"
	MachineTypeGpu MachineType = "gpu"
)

// ImageId is one of the standard service containers.
type ImageId string

const (
	ImageTensorflow ImageId = "registry.gitlab.com/nunet/ml-on-gpu/ml-on-gpu-service/develop/tensorflow"
	ImagePytorch    ImageId = "registry.gitlab.com/nunet/ml-on-gpu/ml-on-gpu-service/develop/pytorch"
	ImageMlOnCpu    ImageId = "registry.gitlab.com/nunet/ml-on-gpu/ml-on-cpu-service/develop/ml-on-cpu"
)

// Blockchain the job is paid on. Currently only Cardano.
type Blockchain string

const BlockchainCardano Blockchain = "Cardano"

type ServiceType string

const (
	ServiceTypeCpu ServiceType = "ml-training-cpu"
	ServiceTypeGpu ServiceType = "ml-training-gpu"
)

// Complexity is a qualitative assessment of the job complexity.
type Complexity string

const (
	ComplexityLow      Complexity = "Low"
	ComplexityModerate Complexity = "Moderate"
	ComplexityHigh     Complexity = "High"
)

// ValidationError reports a malformed or missing field on a request model.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %s: %s", e.Field, e.Reason)
}

// JobConstraints is the minimum system requirements requested for a job.
type JobConstraints struct {
	Cpu        int        `json:"CPU"`
	Ram        int        `json:"RAM"`
	Vram       int        `json:"VRAM"`
	Power      int        `json:"power"`
	Complexity Complexity `json:"complexity"`
	Time       int        `json:"time"`
}

// Default constraints for low/moderate/high resource utilization. These are
// part of the public contract, copy them before changing any field.
var (
	ConstraintsLow      = JobConstraints{Cpu: 500, Ram: 2000, Vram: 2000, Power: 170, Complexity: ComplexityLow, Time: 1}
	ConstraintsModerate = JobConstraints{Cpu: 1500, Ram: 8000, Vram: 8000, Power: 220, Complexity: ComplexityModerate, Time: 1}
	ConstraintsHigh     = JobConstraints{Cpu: 2500, Ram: 16000, Vram: 24000, Power: 350, Complexity: ComplexityHigh, Time: 1}
)

// JobParams carries the main job parameters.
type JobParams struct {
	MachineType MachineType `json:"machine_type"`
	ImageId     ImageId     `json:"image_id"`
	ModelUrl    string      `json:"model_url"`
	Packages    []string    `json:"packages"`
}

// JobRequest is the configuration posted to the DMS to request a job.
type JobRequest struct {
	AddressUser string         `json:"address_user"`
	MaxNtx      int            `json:"max_ntx"`
	Blockchain  Blockchain     `json:"blockchain"`
	ServiceType ServiceType    `json:"service_type"`
	Params      JobParams      `json:"params"`
	Constraints JobConstraints `json:"constraints"`
}

// NewJobRequest builds a validated JobRequest. The blockchain field is fixed
// to Cardano and a nil package list is normalized to an empty one so that it
// serializes as [] instead of null.
func NewJobRequest(addressUser string, maxNtx int, serviceType ServiceType, params JobParams, constraints JobConstraints) (*JobRequest, error) {
	if params.Packages == nil {
		params.Packages = []string{}
	}
	jobRequest := &JobRequest{
		AddressUser: addressUser,
		MaxNtx:      maxNtx,
		Blockchain:  BlockchainCardano,
		ServiceType: serviceType,
		Params:      params,
		Constraints: constraints,
	}
	if err := jobRequest.Validate(); err != nil {
		return nil, err
	}
	return jobRequest, nil
}

// Validate checks the request for missing required fields.
func (r *JobRequest) Validate() error {
	if r.AddressUser == "" {
		return &ValidationError{Field: "address_user", Reason: "required"}
	}
	if r.MaxNtx <= 0 {
		return &ValidationError{Field: "max_ntx", Reason: "must be positive"}
	}
	if r.Blockchain == "" {
		return &ValidationError{Field: "blockchain", Reason: "required"}
	}
	if r.ServiceType == "" {
		return &ValidationError{Field: "service_type", Reason: "required"}
	}
	if r.Params.MachineType == "" {
		return &ValidationError{Field: "params.machine_type", Reason: "required"}
	}
	if r.Params.ImageId == "" {
		return &ValidationError{Field: "params.image_id", Reason: "required"}
	}
	if r.Params.ModelUrl == "" {
		return &ValidationError{Field: "params.model_url", Reason: "required"}
	}
	if r.Constraints == (JobConstraints{}) {
		return &ValidationError{Field: "constraints", Reason: "required"}
	}
	return nil
}

// ByteString holds the oracle message as raw bytes. Text input is stored as
// its UTF-8 encoding, byte input passes through unchanged.
type ByteString []byte

// NewByteString normalizes a string or byte slice into a ByteString. Any
// other input type fails with a ValidationError.
func NewByteString(v interface{}) (ByteString, error) {
	switch m := v.(type) {
	case string:
		return ByteString(m), nil
	case []byte:
		return ByteString(m), nil
	case ByteString:
		return m, nil
	default:
		return nil, &ValidationError{
			Field:  "oracle_message",
			Reason: fmt.Sprintf("must be a string or byte slice, found input of type %T", v),
		}
	}
}

func (b *ByteString) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return &ValidationError{Field: "oracle_message", Reason: "empty input"}
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return &ValidationError{Field: "oracle_message", Reason: err.Error()}
		}
		*b = ByteString(s)
		return nil
	case '[':
		var raw []uint16
		if err := json.Unmarshal(data, &raw); err != nil {
			return &ValidationError{Field: "oracle_message", Reason: err.Error()}
		}
		out := make([]byte, len(raw))
		for i, v := range raw {
			if v > 0xff {
				return &ValidationError{Field: "oracle_message", Reason: fmt.Sprintf("byte value out of range: %d", v)}
			}
			out[i] = byte(v)
		}
		*b = out
		return nil
	default:
		return &ValidationError{Field: "oracle_message", Reason: fmt.Sprintf("must be a string or byte array, found %s", string(data))}
	}
}

func (b ByteString) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(b))
}

// JobConfig is the peer configuration the job has been assigned, returned by
// the DMS request-service endpoint.
type JobConfig struct {
	ComputeProviderAddr string     `json:"compute_provider_addr"`
	EstimatedPrice      float64    `json:"estimated_price"`
	OracleMessage       ByteString `json:"oracle_message"`
	Signature           string     `json:"signature"`
}

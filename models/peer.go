package models

// Gpu describes one GPU attached to a peer.
type Gpu struct {
	Name     string `json:"name"`
	TotVram  int    `json:"tot_vram"`
	FreeVram int    `json:"free_vram"`
}

// Resources is the resource information for a compute provider.
type Resources struct {
	Id        int `json:"id"`
	TotCpuHz  int `json:"tot_cpu_hz"`
	PriceCpu  int `json:"price_cpu"`
	Ram       int `json:"ram"`
	PriceRam  int `json:"price_ram"`
	Vcpu      int `json:"vcpu"`
	Disk      int `json:"disk"`
	PriceDisk int `json:"price_disk"`
}

// Service is a service running on a peer.
type Service struct {
	Id                   int     `json:"ID"`
	CreatedAt            string  `json:"CreatedAt"`
	UpdatedAt            string  `json:"UpdatedAt"`
	DeletedAt            *string `json:"DeletedAt"`
	TxHash               string  `json:"TxHash"`
	JobStatus            string  `json:"JobStatus"`
	JobDuration          int     `json:"JobDuration"`
	EstimatedJobDuration int     `json:"EstimatedJobDuration"`
	ServiceName          string  `json:"ServiceName"`
	ContainerId          string  `json:"ContainerID"`
	ResourceRequirements int     `json:"ResourceRequirements"`
	ImageId              string  `json:"ImageID"`
	LogUrl               string  `json:"LogURL"`
	LastLogFetch         string  `json:"LastLogFetch"`
}

// Peer is a read-only snapshot of one network peer.
type Peer struct {
	PeerId               string    `json:"peer_id"`
	HasGpu               bool      `json:"has_gpu"`
	AllowCardano         bool      `json:"allow_cardano"`
	GpuInfo              []Gpu     `json:"gpu_info"`
	TokenomicsAddrs      string    `json:"tokenomics_addrs"`
	TokenomicsBlockchain string    `json:"tokenomics_blockchain"`
	AvailableResources   Resources `json:"available_resources"`
	Services             []Service `json:"services"`
}

// PeerList is the list of peers a node is connected to.
type PeerList []Peer

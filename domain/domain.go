package domain

// Registry is a typed snapshot of the corechannel aggregate: data.corechannel.nodes (API/core nodes)
// and data.corechannel.resource_nodes (compute nodes). Missing collections decode as empty.
type Registry struct {
	Nodes         []APINode
	ResourceNodes []ResourceNode
}

// APINode is a core channel node. Multiaddress is a libp2p address such as /ip4/1.2.3.4/tcp/4025/p2p/Qm...
type APINode struct {
	Hash         string
	Name         string
	Multiaddress string
	Status       string
}

// ResourceNode is a compute resource node. Address is an https-ish URL, possibly without scheme
// and with stray slashes (e.g. "crn.example.org/").
type ResourceNode struct {
	Hash    string
	Name    string
	Address string
	Type    string
	Status  string
}

// Endpoint is a directly dialable URL injected into a load balancer server list.
type Endpoint struct {
	URL string `json:"url" yaml:"url"`
}

// SystemInfo is the capacity of one resource node collected during an enrichment cycle.
// URL is the node's classified endpoint (https://host/vm/).
type SystemInfo struct {
	URL       string
	CPUCount  int
	MemBytes  int64
	DiskBytes int64
}

// Service names the default template is expected to declare.
const (
	ServiceAPI = "aleph-api"
	ServiceVM  = "aleph-vm"
)

// TemplateDefault is the template category served by GET /api.
const TemplateDefault = "default"

package models

// Computer is a host record from the Landscape computer inventory. The
// server omits most fields for unmanaged or never-seen machines, so
// nearly everything decodes to its zero value when absent.
type Computer struct {
	ID                    int               `json:"id"`
	Hostname              string            `json:"hostname"`
	Title                 string            `json:"title"`
	Comment               string            `json:"comment"`
	TotalMemory           int               `json:"total_memory"`
	TotalSwap             int               `json:"total_swap"`
	Tags                  []string          `json:"tags"`
	Annotations           map[string]string `json:"annotations"`
	CloudInstanceMetadata map[string]string `json:"cloud_instance_metadata"`
	AccessGroup           string            `json:"access_group"`
	Distribution          string            `json:"distribution"`
	VMInfo                string            `json:"vm_info"`
	ContainerInfo         string            `json:"container_info"`
	UpdateManagerPrompt   string            `json:"update_manager_prompt"`
	RebootRequiredFlag    bool              `json:"reboot_required_flag"`
	LastPingTime          string            `json:"last_ping_time"`
	LastExchangeTime      string            `json:"last_exchange_time"`
}

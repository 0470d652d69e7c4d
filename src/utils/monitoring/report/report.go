package report

type Report struct {
	Run       *RunReport       `json:"run,omitempty"`
	Gateway   *GatewayReport   `json:"gateway,omitempty"`
	Registry  *RegistryReport  `json:"registry,omitempty"`
	Backlog   *BacklogReport   `json:"backlog,omitempty"`
	Publisher *PublisherReport `json:"publisher,omitempty"`
}

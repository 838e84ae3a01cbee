package domain

// HealthStatus is the Analysis Service's answer to a health probe.
type HealthStatus struct {
	Status         string `json:"status"`
	Message        string `json:"message"`
	RAGInitialized bool   `json:"rag_initialized"`
}

// Healthy reports whether the service declared itself healthy.
func (h *HealthStatus) Healthy() bool {
	return h != nil && h.Status == "healthy"
}

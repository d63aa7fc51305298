package app

// Health reports process status and which engines and providers are
// configured. Derived from configuration, not a live probe.
type Health struct {
	Status         string   `json:"status"`
	Service        string   `json:"service"`
	DocumentEngine string   `json:"document_engine"`
	URLEngine      string   `json:"url_engine"`
	Engines        []string `json:"engines"`
	Providers      []string `json:"providers"`
	OCREnabled     bool     `json:"ocr_enabled"`
}

func (a *App) Health() Health {
	return Health{
		Status:         "healthy",
		Service:        "contentd",
		DocumentEngine: a.cfg.DocumentEngine,
		URLEngine:      a.cfg.URLEngine,
		Engines:        a.selector.Available(),
		Providers:      a.dispatcher.Available(),
		OCREnabled:     a.cfg.OCREnabled,
	}
}

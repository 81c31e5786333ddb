package domain

// Setting keys persisted in the settings store. The two marker keys are
// written by the orchestrator; the rest gate sync behaviour.
const (
	SettingLastSync   = "last_sync"
	SettingLastError  = "last_error"
	SettingSyncConfig = "sync_settings"
)

// SyncSettings gates how the mapper and orchestrator behave. Loaded from the
// settings store at the start of each run so an operator change takes effect
// on the next run without a restart.
type SyncSettings struct {
	MatchBySupplierID bool    `json:"sync_by_id"`
	MatchByName       bool    `json:"sync_name_match"`
	MatchByTitle      bool    `json:"sync_title_match"`
	SyncPrice         bool    `json:"sync_price"`
	SyncStock         bool    `json:"sync_stock"`
	SyncCategories    bool    `json:"sync_categories"`
	SyncImages        bool    `json:"sync_images"`
	Commission        float64 `json:"commission"`
	PricePrecision    int     `json:"price_precision"`
	PageSize          int     `json:"page_size"`
}

// DefaultSyncSettings mirrors the defaults a fresh install ships with.
func DefaultSyncSettings() SyncSettings {
	return SyncSettings{
		MatchBySupplierID: true,
		MatchByName:       true,
		MatchByTitle:      true,
		SyncPrice:         true,
		SyncStock:         true,
		SyncCategories:    true,
		SyncImages:        true,
		Commission:        0,
		PricePrecision:    2,
		PageSize:          50,
	}
}

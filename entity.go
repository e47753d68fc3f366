package financekg

// Entity is a single canonical company record: the authoritative company name
// and its ticker symbol, in the form they were stored at index-build time.
type Entity struct {
	name   string // authoritative, human-readable company name
	ticker string // ticker symbol as stored (original case preserved)
}

func NewEntity(name, ticker string) Entity {
	return Entity{name: name, ticker: ticker}
}

// Name returns the authoritative company name.
func (e Entity) Name() string { return e.name }

// Ticker returns the ticker symbol as stored.
func (e Entity) Ticker() string { return e.ticker }

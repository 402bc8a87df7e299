package club_api_client

const (
	// Default base URL of a locally running club API
	DefaultBaseURL = "http://localhost:5000/api"

	// API Endpoints
	AuthEndpoint         = "/auth"
	MyTeamEndpoint       = "/team/my-team"
	MarketEndpoint       = "/transfer/market"
	TransferListEndpoint = "/transfer/transfer-list"
	ToggleEndpoint       = "/transfer/toggle"
	BuyEndpoint          = "/transfer/buy"
)

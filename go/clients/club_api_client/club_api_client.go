package club_api_client

import (
	"github.com/mcdev12/clubmanager/go/clients"
)

type ClubApiClient struct {
	*clients.BaseClient
}

func NewClubApiClient(baseURL string, tokens clients.TokenSource) *ClubApiClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	client := &ClubApiClient{
		BaseClient: clients.NewBaseClient(baseURL),
	}

	if tokens != nil {
		client.SetTokenSource(tokens)
	}

	return client
}

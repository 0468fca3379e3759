package database

import (
	"fmt"
	"os"

	"github.com/supabase-community/supabase-go"
)

// SupabaseClient wraps the Supabase client used for layer storage.
type SupabaseClient struct {
	Client *supabase.Client
}

// NewSupabaseClient creates a client from SUPABASE_URL and
// SUPABASE_ANON_KEY environment variables.
func NewSupabaseClient() (*SupabaseClient, error) {
	supabaseURL := os.Getenv("SUPABASE_URL")
	supabaseAnonKey := os.Getenv("SUPABASE_ANON_KEY")

	if supabaseURL == "" {
		return nil, fmt.Errorf("SUPABASE_URL environment variable is not set")
	}
	if supabaseAnonKey == "" {
		return nil, fmt.Errorf("SUPABASE_ANON_KEY environment variable is not set")
	}

	client, err := supabase.NewClient(supabaseURL, supabaseAnonKey, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("initializing Supabase client: %w", err)
	}

	return &SupabaseClient{
		Client: client,
	}, nil
}

// GetClient returns the underlying Supabase client.
func (sc *SupabaseClient) GetClient() *supabase.Client {
	return sc.Client
}

// HealthCheck verifies the client is usable.
func (sc *SupabaseClient) HealthCheck() error {
	if sc.Client == nil {
		return fmt.Errorf("Supabase client is not initialized")
	}
	return nil
}

package nerdgraph

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Account is one New Relic account visible to the API key.
type Account struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

const accountsQuery = `{
  actor {
    accounts {
      id
      name
    }
  }
}`

const accountNameQuery = `query ($accountId: Int!) {
  actor {
    account(id: $accountId) {
      name
    }
  }
}`

// ListAccounts returns every account accessible to the API key.
func (c *Client) ListAccounts(ctx context.Context) ([]Account, error) {
	data, err := c.Query(ctx, accountsQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	var resp struct {
		Actor struct {
			Accounts []Account `json:"accounts"`
		} `json:"actor"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode accounts: %w", err)
	}
	return resp.Actor.Accounts, nil
}

// AccountName resolves an account's display name and standardizes it for use
// as a file prefix (uppercase, spaces replaced with underscores). Callers
// should fall back to ACCOUNT_<id> on error.
func (c *Client) AccountName(ctx context.Context, accountID int) (string, error) {
	data, err := c.Query(ctx, accountNameQuery, map[string]any{"accountId": accountID})
	if err != nil {
		return "", fmt.Errorf("resolve account name: %w", err)
	}

	var resp struct {
		Actor struct {
			Account struct {
				Name string `json:"name"`
			} `json:"account"`
		} `json:"actor"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("decode account name: %w", err)
	}

	name := strings.TrimSpace(resp.Actor.Account.Name)
	if name == "" {
		return fmt.Sprintf("ACCOUNT_%d", accountID), nil
	}
	return strings.ToUpper(strings.ReplaceAll(name, " ", "_")), nil
}

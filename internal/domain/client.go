package domain

// ClientTier drives the client discount
type ClientTier string

const (
	TierStandard ClientTier = "standard"
	TierSilver   ClientTier = "silver"
	TierGold     ClientTier = "gold"
	TierPlatinum ClientTier = "platinum"
)

var tierDiscounts = map[ClientTier]float64{
	TierStandard: 0,
	TierSilver:   0.05,
	TierGold:     0.10,
	TierPlatinum: 0.15,
}

// Discount returns the fractional discount for the tier; unknown tiers get none
func (t ClientTier) Discount() float64 {
	return tierDiscounts[t]
}

// Client is the optional profile of the requesting client
type Client struct {
	ID         int64
	Name       string
	Tier       ClientTier
	TotalSpent float64
}

// Discount returns the client's discount, zero for a nil client
func (c *Client) Discount() float64 {
	if c == nil {
		return 0
	}
	return c.Tier.Discount()
}

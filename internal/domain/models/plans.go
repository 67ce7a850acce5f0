package models

// Plan is a static billing plan shown on the pricing page. Plans are
// configuration data; no billing integration reads them.
type Plan struct {
	Name            string
	Price           int // USD per month
	Features        []string
	StripeProductID string
	StripePriceID   string
}

// Plans is the fixed plan table, cheapest first.
var Plans = []Plan{
	{
		Name:  "Starter",
		Price: 49,
		Features: []string{
			"1,000 job searches/month",
			"500 contact enrichments/month",
			"Basic filters & search",
			"Email support",
			"Export to CSV",
		},
		StripeProductID: "prod_RsP4IJeES8hBDu",
		StripePriceID:   "price_1QyeDTGPZxkKVmuncIjFBYj7",
	},
	{
		Name:  "Professional",
		Price: 149,
		Features: []string{
			"10,000 job searches/month",
			"5,000 contact enrichments/month",
			"Advanced filters & search",
			"Priority email support",
			"API access",
			"Team collaboration (5 seats)",
			"Export to CSV & CRM integrations",
		},
		StripeProductID: "prod_RsP2eL9TWCTqFR",
		StripePriceID:   "price_1QyeEuGPZxkKVmunwbaiAkaO",
	},
	{
		Name:  "Enterprise",
		Price: 499,
		Features: []string{
			"Unlimited job searches",
			"50,000 contact enrichments/month",
			"Custom filters & workflows",
			"Dedicated support",
			"Full API access",
			"Unlimited team seats",
			"Custom integrations",
			"Advanced analytics",
			"White-label options",
		},
		StripeProductID: "prod_RsP19mrNfkIeXG",
		StripePriceID:   "price_1QyeFvGPZxkKVmunS8HJc1OS",
	},
}

package model

// Builder assembles Params field by field and refuses to build until every
// required field has been set. Compounding defaults to true and
// PlatformFeeRate to 0.
type Builder struct {
	params Params
	set    map[string]bool
}

// requiredFields lists the fields Build insists on, in report order.
var requiredFields = []string{"initial_balance", "win_rate", "risk_reward_ratio", "total_trades"}

func NewBuilder() *Builder {
	return &Builder{
		params: Params{Compounding: true},
		set:    map[string]bool{},
	}
}

func (b *Builder) InitialBalance(amount int) *Builder {
	b.params.InitialBalance = amount
	b.set["initial_balance"] = true
	return b
}

func (b *Builder) WinRate(percentage int) *Builder {
	b.params.WinRate = percentage
	b.set["win_rate"] = true
	return b
}

func (b *Builder) RiskRewardRatio(ratio float64) *Builder {
	b.params.RiskRewardRatio = ratio
	b.set["risk_reward_ratio"] = true
	return b
}

func (b *Builder) TotalTrades(n int) *Builder {
	b.params.TotalTrades = n
	b.set["total_trades"] = true
	return b
}

func (b *Builder) Compounding(enabled bool) *Builder {
	b.params.Compounding = enabled
	return b
}

func (b *Builder) PlatformFeeRate(percentage float64) *Builder {
	b.params.PlatformFeeRate = percentage
	return b
}

// Build returns validated Params. Missing required fields are reported
// before range checks run.
func (b *Builder) Build() (Params, error) {
	missing := &ValidationError{}
	for _, f := range requiredFields {
		if !b.set[f] {
			missing.add(f, nil, "is required")
		}
	}
	if err := missing.orNil(); err != nil {
		return Params{}, err
	}
	if err := b.params.Validate(); err != nil {
		return Params{}, err
	}
	return b.params, nil
}

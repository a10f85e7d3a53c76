package types

// QuoteRequest is a parsed "<amount> <from> to <to>" command plus its flags
type QuoteRequest struct {
	Amount        string
	SourceToken   string
	DestToken     string
	SourceChain   string
	DestChain     string
	RecipientAddr string
	RefundAddr    string
	Tag           string
	OrderType     string

	// Reverse means Amount is what the recipient should receive
	Reverse bool
}

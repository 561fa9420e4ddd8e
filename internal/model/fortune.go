// internal/model/fortune.go
package model

// FortuneResult is one omikuji slip from the results table.
type FortuneResult struct {
	Number      string `db:"number" json:"number"`
	FortuneRank string `db:"fortune_rank" json:"fortune_rank"`
	Message     string `db:"message" json:"message"`
}

// FallbackFortune is served whenever the results table cannot produce a row.
var FallbackFortune = FortuneResult{
	Number:      "11",
	FortuneRank: "中吉",
	Message:     "深呼吸してペースを整えよう。",
}

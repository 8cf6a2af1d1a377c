package generator

import (
	"time"

	"empathybridge/render"
)

// Topic is one selectable narrative theme.
type Topic struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// Request asks for a story about Location covering Topics.
// Topics keeps the caller's selection order.
type Request struct {
	Location string   `json:"location"`
	Topics   []string `json:"topics"`
}

// Story is a generated narrative plus its classified blocks.
type Story struct {
	ID        string         `json:"id"`
	Request   Request        `json:"request"`
	Title     string         `json:"title"`
	Digest    string         `json:"digest"`
	Markdown  string         `json:"markdown"`
	Blocks    []render.Block `json:"blocks"`
	Narrator  string         `json:"narrator"`
	CreatedAt time.Time      `json:"created_at"`
}

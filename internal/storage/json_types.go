package storage

import "encoding/json"

// Written form of a table. Field names are part of the persisted format.

type tableDocument struct {
	NumColumns int              `json:"numColumns"`
	Columns    []columnDocument `json:"columns"`
	Records    []recordDocument `json:"records"`
}

type columnDocument struct {
	Name string `json:"name"`
	Type int    `json:"type"`
}

// Read form of a table. Pointers and raw messages let the decoder tell a
// missing field apart from a zero value.

type tableMeta struct {
	NumColumns *int              `json:"numColumns"`
	Columns    []columnMeta      `json:"columns"`
	Records    []json.RawMessage `json:"records"`
}

type columnMeta struct {
	Name *string `json:"name"`
	Type *int    `json:"type"`
}

package tools

import (
	"github.com/mitchellh/mapstructure"
)

// Per-tool argument shapes. Dispatch decodes the loose JSON argument
// map into one of these before touching the network, so a malformed
// call never costs a remote round trip.

type getPageArgs struct {
	NameOrUUID string `mapstructure:"name_or_uuid"`
}

type getPageContentArgs struct {
	PageName string `mapstructure:"page_name"`
}

type createPageArgs struct {
	Name       string         `mapstructure:"name"`
	Properties map[string]any `mapstructure:"properties"`
}

type getBlockArgs struct {
	UUID string `mapstructure:"uuid"`
}

type createBlockArgs struct {
	Content string `mapstructure:"content"`
	Parent  string `mapstructure:"parent"`
	Sibling string `mapstructure:"sibling"`
}

type updateBlockArgs struct {
	UUID       string         `mapstructure:"uuid"`
	Content    string         `mapstructure:"content"`
	Properties map[string]any `mapstructure:"properties"`
}

type queryArgs struct {
	Query string `mapstructure:"query"`
}

type stateKeyArgs struct {
	Key string `mapstructure:"key"`
}

// decodeArgs maps the raw argument object into a typed struct. Decoding
// is strict: a value of the wrong JSON type fails rather than being
// coerced.
func decodeArgs(raw map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  out,
		TagName: "mapstructure",
	})
	if err != nil {
		return &ValidationError{Reason: err.Error()}
	}
	if err := dec.Decode(raw); err != nil {
		return &ValidationError{Reason: err.Error()}
	}
	return nil
}

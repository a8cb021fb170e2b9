package lint

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// DecodeOptions decodes rule options into a struct with mapstructure
// tags. Scalars are converted where unambiguous ("1" to 1, a string to a
// one-element slice).
func DecodeOptions(opts map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(opts); err != nil {
		return fmt.Errorf("decode options: %w", err)
	}
	return nil
}

package configloader

import "github.com/yaklabco/mdtree/pkg/config"

// mergeConfig overlays non-zero fields of src onto dst.
// Zero values in src mean "not set in this file" and leave dst alone,
// so a sparse project config only overrides what it names.
func mergeConfig(dst, src *config.Config) {
	if src == nil {
		return
	}

	if src.Format != "" {
		dst.Format = src.Format
	}
	if src.Color != "" {
		dst.Color = src.Color
	}
	if src.MaxDepth != 0 {
		dst.MaxDepth = src.MaxDepth
	}
	if src.DetectLanguages {
		dst.DetectLanguages = true
	}
	if len(src.Extensions) > 0 {
		dst.Extensions = append([]string(nil), src.Extensions...)
	}
}

// mergeCLI overlays CLI flag values onto dst. CLI flags share the
// overlay rules of file merging plus the flag-only fields.
func mergeCLI(dst, cli *config.Config) {
	mergeConfig(dst, cli)

	dst.ShowRefs = cli.ShowRefs
	dst.ShowSpans = cli.ShowSpans
}

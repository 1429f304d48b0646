package locale_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metacatalog/timefmt/internal/domain"
	"github.com/metacatalog/timefmt/internal/locale"
)

func TestSupported(t *testing.T) {
	tags := locale.Supported()

	assert.Len(t, tags, 9)
	assert.Contains(t, tags, locale.Default)

	tags[0] = "xx-XX"
	assert.NotContains(t, locale.Supported(), locale.Tag("xx-XX"), "Supported must return a copy")
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    locale.Tag
		wantErr bool
	}{
		{name: "canonical", input: "en-US", want: locale.EnUS},
		{name: "underscore", input: "en_US", want: locale.EnUS},
		{name: "mixed case", input: "DE-de", want: locale.DeDE},
		{name: "chinese", input: "zh-CN", want: locale.ZhCN},
		{name: "surrounding space", input: " pt-BR ", want: locale.PtBR},
		{name: "language only", input: "en", wantErr: true},
		{name: "unsupported region", input: "en-GB", wantErr: true},
		{name: "malformed", input: "not a locale", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := locale.Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrUnsupportedLocale)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  locale.Tag
	}{
		{name: "exact", input: "ja-JP", want: locale.JaJP},
		{name: "language only", input: "de", want: locale.DeDE},
		{name: "accept-language list", input: "fr-CH, fr;q=0.9, en;q=0.8", want: locale.FrFR},
		{name: "quality ordering", input: "en;q=0.1, nl;q=0.9", want: locale.NlNL},
		{name: "unsupported language", input: "ko-KR", want: locale.Default},
		{name: "empty", input: "", want: locale.Default},
		{name: "garbage", input: ";;;", want: locale.Default},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, locale.Match(tt.input))
		})
	}
}

func TestTag_Language(t *testing.T) {
	assert.Equal(t, "ru-RU", locale.RuRU.Language().String())
	assert.Equal(t, "en-US", locale.Tag("???").Language().String())
}

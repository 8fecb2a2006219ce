package services

import (
	"strings"
	"testing"

	"github.com/fitcenter/backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCodeGenerator(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		gen, err := NewCodeGenerator(&config.RedemptionConfig{})
		require.NoError(t, err)
		assert.Equal(t, config.DefaultCodeLength, gen.Length())
		assert.Equal(t, 50, gen.MaxAttempts())
	})

	t.Run("lower case alphabet is normalized", func(t *testing.T) {
		gen, err := NewCodeGenerator(&config.RedemptionConfig{CodeAlphabet: "abc", CodeLength: 4})
		require.NoError(t, err)

		code, err := gen.Generate(nil)
		require.NoError(t, err)
		assert.Equal(t, strings.ToUpper(code), code)
	})

	t.Run("duplicate characters", func(t *testing.T) {
		_, err := NewCodeGenerator(&config.RedemptionConfig{CodeAlphabet: "AAB"})
		assert.Error(t, err)
	})

	t.Run("non ascii alphabet", func(t *testing.T) {
		_, err := NewCodeGenerator(&config.RedemptionConfig{CodeAlphabet: "ABÉ"})
		assert.Error(t, err)
	})
}

func TestCodeGenerator_Generate(t *testing.T) {
	gen, err := NewCodeGenerator(&config.RedemptionConfig{})
	require.NoError(t, err)

	t.Run("length and alphabet", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			code, err := gen.Generate(nil)
			require.NoError(t, err)
			assert.Len(t, code, 6)
			for _, c := range code {
				assert.True(t, strings.ContainsRune(config.DefaultCodeAlphabet, c), "unexpected %q", c)
			}
		}
	})

	t.Run("skips taken codes", func(t *testing.T) {
		taken := map[string]bool{}
		for i := 0; i < 500; i++ {
			code, err := gen.Generate(func(code string) bool { return taken[code] })
			require.NoError(t, err)
			assert.False(t, taken[code])
			taken[code] = true
		}
	})

	t.Run("retries until free", func(t *testing.T) {
		calls := 0
		_, err := gen.Generate(func(code string) bool {
			calls++
			return calls < 3
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("fails closed when exhausted", func(t *testing.T) {
		calls := 0
		_, err := gen.Generate(func(code string) bool {
			calls++
			return true
		})
		assert.ErrorIs(t, err, ErrCodeSpaceExhausted)
		assert.Equal(t, gen.MaxAttempts(), calls)
	})

	t.Run("tiny code space", func(t *testing.T) {
		small, err := NewCodeGenerator(&config.RedemptionConfig{CodeAlphabet: "AB", CodeLength: 1, MaxCodeAttempts: 20})
		require.NoError(t, err)

		taken := map[string]bool{}
		for i := 0; i < 2; i++ {
			code, err := small.Generate(func(code string) bool { return taken[code] })
			require.NoError(t, err)
			taken[code] = true
		}
		_, err = small.Generate(func(code string) bool { return taken[code] })
		assert.ErrorIs(t, err, ErrCodeSpaceExhausted)
	})
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "AB12CD", NormalizeCode("  ab12cd\n"))
	assert.Equal(t, "", NormalizeCode("   "))
}

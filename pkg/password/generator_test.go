package password_test

import (
	"errors"
	"io"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/edgeflare/passgen/internal/testutil"
	"github.com/edgeflare/passgen/internal/testutil/exptest"
	"github.com/edgeflare/passgen/pkg/password"
	"github.com/edgeflare/passgen/pkg/util/rand"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scenario struct {
	Name            string                `json:"name"`
	Groups          []string              `json:"groups"`
	Method          password.LengthMethod `json:"method"`
	Length          int                   `json:"length"`
	Entropy         float64               `json:"entropy"`
	WantLength      int                   `json:"wantLength"`
	WantCharsetSize int                   `json:"wantCharsetSize"`
	WantEntropy     string                `json:"wantEntropy"`
}

func TestRunScenarios(t *testing.T) {
	var scenarios []scenario
	_, err := testutil.LoadJSON("scenarios.json", &scenarios)
	require.NoError(t, err, "Failed to load scenarios")
	require.NotEmpty(t, scenarios)

	for _, sc := range scenarios {
		t.Run(sc.Name, func(t *testing.T) {
			cfg := password.Config{
				CharSets:     sc.Groups,
				LengthMethod: sc.Method,
				Length:       sc.Length,
				Entropy:      sc.Entropy,
			}
			g, rec, _ := exptest.NewGenerator(t, cfg)

			res, err := g.Run()
			require.NoError(t, err)
			require.NotNil(t, res)
			require.Empty(t, rec.Errors)
			require.Len(t, rec.Outputs, 1)

			assert.Equal(t, sc.WantLength, res.Stats.Length)
			assert.Equal(t, sc.WantCharsetSize, res.Stats.CharsetSize)
			assert.Equal(t, sc.WantEntropy, password.FormatEntropy(res.Stats.Entropy))
			assert.Equal(t, sc.WantLength, utf8.RuneCountInString(res.Password))

			charset, err := password.BuildCharset(sc.Groups, nil)
			require.NoError(t, err)
			for _, r := range res.Password {
				assert.Contains(t, charset, string(r))
			}

			assert.Equal(t, res.Password, rec.Outputs[0].Password)
			assert.Equal(t, res.Stats.String(), rec.Outputs[0].Stats)
			assert.Equal(t, res.Password, g.CurrentPassword())
			assert.Equal(t, res.Stats.String(), g.Stats())
			assert.NotEmpty(t, res.ID)
		})
	}
}

func TestRunFixedLength(t *testing.T) {
	cfg := password.DefaultConfig()
	g, _, _ := exptest.NewGenerator(t, cfg)
	charset, err := password.BuildCharset(cfg.CharSets, nil)
	require.NoError(t, err)

	for _, l := range []int{1, 2, 17, 64, 500} {
		res, err := g.Generate(password.Request{Groups: cfg.CharSets, Method: password.MethodLength, Length: l})
		require.NoError(t, err)
		assert.Len(t, res.Password, l)
		for _, r := range res.Password {
			assert.Contains(t, charset, string(r))
		}
	}
}

func TestRunMultiUnitSymbols(t *testing.T) {
	cfg := password.Config{
		CharSets:     []string{"faces"},
		CustomSets:   map[string]string{"faces": "😀😁😂"},
		LengthMethod: password.MethodLength,
		Length:       12,
	}
	g, _, _ := exptest.NewGenerator(t, cfg)

	res, err := g.Run()
	require.NoError(t, err)
	assert.Equal(t, 3, res.Stats.CharsetSize)
	assert.Equal(t, 12, utf8.RuneCountInString(res.Password))
	assert.Equal(t, 48, len(res.Password))
}

func TestRunUserErrors(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     password.Config
		wantMsg string
	}{
		{
			name:    "empty charset",
			cfg:     password.Config{LengthMethod: password.MethodLength, Length: 5},
			wantMsg: "Error: character set is empty",
		},
		{
			name:    "single symbol in entropy mode",
			cfg:     password.Config{CharSets: []string{password.GroupSpace}, LengthMethod: password.MethodEntropy, Entropy: 40},
			wantMsg: "Error: need at least 2 distinct characters in set",
		},
		{
			name:    "negative length",
			cfg:     password.Config{CharSets: []string{password.GroupNumbers}, LengthMethod: password.MethodLength, Length: -1},
			wantMsg: "Error: negative password length: -1",
		},
		{
			name:    "length too large",
			cfg:     password.Config{CharSets: []string{password.GroupNumbers}, LengthMethod: password.MethodLength, Length: 10001},
			wantMsg: "Error: password length too large: 10001 exceeds 10000",
		},
		{
			name:    "unknown group",
			cfg:     password.Config{CharSets: []string{"runes"}, LengthMethod: password.MethodLength, Length: 5},
			wantMsg: `Error: unknown symbol group: "runes"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g, rec, logs := exptest.NewGenerator(t, tc.cfg)

			res, err := g.Run()
			require.NoError(t, err)
			assert.Nil(t, res)
			assert.Empty(t, rec.Outputs)
			require.Equal(t, []string{tc.wantMsg}, rec.Errors)
			assert.Empty(t, g.CurrentPassword())
			assert.Zero(t, logs.Len(), "debug traces are off by default")
		})
	}
}

func TestRunFatalErrors(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     password.Config
		opts    []password.GeneratorOptions
		wantErr error
	}{
		{
			name:    "unsupported length method",
			cfg:     password.Config{CharSets: []string{password.GroupNumbers}, LengthMethod: "words", Length: 4},
			wantErr: password.ErrUnsupportedLengthMethod,
		},
		{
			name: "invalid encoding",
			cfg: password.Config{
				CharSets:     []string{"broken"},
				CustomSets:   map[string]string{"broken": "a\xed\xa0\x80"},
				LengthMethod: password.MethodLength,
				Length:       4,
			},
			wantErr: password.ErrInvalidEncoding,
		},
		{
			name:    "broken weak source",
			cfg:     password.Config{CharSets: []string{password.GroupNumbers}, LengthMethod: password.MethodLength, Length: 4},
			opts:    []password.GeneratorOptions{password.WithSource(rand.NewSource(constWeak(1), nil))},
			wantErr: password.ErrArithmetic,
		},
		{
			name:    "secure source failure",
			cfg:     password.Config{CharSets: []string{password.GroupNumbers}, LengthMethod: password.MethodLength, Length: 4},
			opts:    []password.GeneratorOptions{password.WithSource(rand.NewSource(nil, failingSecure{}))},
			wantErr: io.ErrUnexpectedEOF,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g, rec, logs := exptest.NewGenerator(t, tc.cfg, tc.opts...)

			res, err := g.Run()
			require.ErrorIs(t, err, tc.wantErr)
			assert.False(t, password.IsUserError(err))
			assert.Nil(t, res)
			assert.Zero(t, rec.Calls(), "fatal errors are not reported")
			assert.Empty(t, g.CurrentPassword())
			assert.Equal(t, 1, logs.FilterMessage("password generation failed").Len())
		})
	}
}

func TestRunExactlyOneReport(t *testing.T) {
	lengths := []int{-5, 0, 3, 10000, 10001}
	for _, l := range lengths {
		cfg := password.DefaultConfig()
		cfg.Length = l
		g, rec, _ := exptest.NewGenerator(t, cfg)

		_, err := g.Run()
		require.NoError(t, err)
		assert.Equal(t, 1, rec.Calls(), "length %d", l)
	}
}

func TestRunZeroLength(t *testing.T) {
	cfg := password.DefaultConfig()
	cfg.Length = 0
	g, rec, _ := exptest.NewGenerator(t, cfg)

	res, err := g.Run()
	require.NoError(t, err)
	assert.Empty(t, res.Password)
	assert.Zero(t, res.Stats.Entropy)
	require.Len(t, rec.Outputs, 1)
	assert.Contains(t, rec.Outputs[0].Stats, "Entropy = 0.00 bits")
}

func TestRunDebugConsole(t *testing.T) {
	cfg := password.DefaultConfig()
	cfg.DebugConsole = true

	g, _, logs := exptest.NewGenerator(t, cfg)
	res, err := g.Run()
	require.NoError(t, err)

	entries := logs.FilterMessage("generated password").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, res.ID, fields["id"])
	assert.EqualValues(t, 10, fields["length"])
	assert.EqualValues(t, 94, fields["charset_size"])
	for _, v := range fields {
		if s, ok := v.(string); ok {
			assert.NotEqual(t, res.Password, s, "password must not be logged")
		}
	}

	cfg.Length = -1
	g, _, logs = exptest.NewGenerator(t, cfg)
	_, err = g.Run()
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("ERROR").Len())
}

func TestReducedSecurityMode(t *testing.T) {
	g, _, logs := exptest.NewGenerator(t, password.DefaultConfig(),
		password.WithSource(rand.NewSource(nil, nil)))

	assert.False(t, g.Secure())
	assert.Equal(t, 1, logs.FilterMessage("secure random source unavailable, passwords rely on math/rand only").Len())

	res, err := g.Run()
	require.NoError(t, err)
	assert.Len(t, res.Password, 10)
}

func TestNewRejectsShadowingCustomSet(t *testing.T) {
	cfg := password.DefaultConfig()
	cfg.CustomSets = map[string]string{password.GroupNumbers: "01"}

	_, err := password.New(cfg, &exptest.Recorder{})
	assert.Error(t, err)
}

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) WriteAll(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

func TestCopy(t *testing.T) {
	g, rec, _ := exptest.NewGenerator(t, password.DefaultConfig())
	res, err := g.Run()
	require.NoError(t, err)

	clip := &fakeClipboard{}
	require.NoError(t, g.Copy(clip))
	assert.Equal(t, res.Password, clip.text)
	assert.Equal(t, 1, rec.Copies)

	clip.err = errors.New("no clipboard")
	assert.ErrorIs(t, g.Copy(clip), clip.err)
	assert.Equal(t, 1, rec.Copies, "failed copies do not notify")
}

func TestGenerateConcurrent(t *testing.T) {
	g, _, _ := exptest.NewGenerator(t, password.DefaultConfig())
	req := g.Config().Request()

	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := g.Generate(req)
			if err != nil {
				t.Errorf("Generate failed: %v", err)
				return
			}
			results[i] = res.Password
		}(i)
	}
	wg.Wait()

	for _, pw := range results {
		assert.Len(t, pw, 10)
	}
	assert.NotEqual(t, results[0], results[1])
}

type constWeak float64

func (c constWeak) Float64() float64 { return float64(c) }

type failingSecure struct{}

func (failingSecure) Uint32() (uint32, error) { return 0, io.ErrUnexpectedEOF }

package password

// Config holds the generator options.
type Config struct {
	CharSets     []string          `mapstructure:"charSets"`
	Length       int               `mapstructure:"length"`
	LengthMethod LengthMethod      `mapstructure:"lengthMethod"`
	Entropy      float64           `mapstructure:"entropy"`
	DebugConsole bool              `mapstructure:"debugConsole"`
	CustomSets   map[string]string `mapstructure:"customSets"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() Config {
	return Config{
		CharSets:     []string{GroupNumbers, GroupLowercase, GroupUppercase, GroupSymbols},
		Length:       10,
		LengthMethod: MethodLength,
		Entropy:      128,
	}
}

// Request returns the generation request described by c.
func (c Config) Request() Request {
	return Request{
		Groups:  c.CharSets,
		Method:  c.LengthMethod,
		Length:  c.Length,
		Entropy: c.Entropy,
	}
}

package config

const (
	defaultSourceDir    = "assets/new hero section"
	defaultDestDir      = "assets"
	defaultEncoder      = EncoderNative
	defaultQuality      = 85
	defaultFocalQuality = 90
	defaultCwebpBinary  = "cwebp"
	defaultLogFormat    = LogFormatConsole
	defaultLogLevel     = "info"
)

// Supported encoder backends.
const (
	EncoderNative = "native"
	EncoderCwebp  = "cwebp"
)

// Supported log formats.
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// Quality returns q as an explicit quality setting.
func Quality(q int) *int {
	return &q
}

// DefaultEntries returns the compiled-in conversion table for the landing
// page assets. The paper image is the focal point of the hero section and is
// kept larger and at a higher quality than the rest.
func DefaultEntries() []Entry {
	return []Entry{
		{Source: "landing page hero section table2.png", Destination: "hero-bg-new.webp", MaxWidth: 1920},
		{Source: "tablet.png", Destination: "tablet-new.webp", MaxWidth: 800},
		{Source: "coffee mug.png", Destination: "coffee-new.webp", MaxWidth: 400},
		{Source: "eraser.png", Destination: "eraser-new.webp", MaxWidth: 300},
		{Source: "kerning post-it.png", Destination: "postit-kerning.webp", MaxWidth: 400},
		{Source: "serif post-it.png", Destination: "postit-serif.webp", MaxWidth: 400},
		{Source: "x-height post-it.png", Destination: "postit-xheight.webp", MaxWidth: 400},
		{Source: "penicl and shaving.png", Destination: "pencil-new.webp", MaxWidth: 800},
		{Source: "Paperwith-A.png", Destination: "paper-a-new.webp", MaxWidth: 1200, Quality: Quality(defaultFocalQuality)},
	}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			SourceDir: defaultSourceDir,
			DestDir:   defaultDestDir,
			LockFile:  defaultLockFile(),
		},
		Encoding: Encoding{
			Encoder:     defaultEncoder,
			Quality:     Quality(defaultQuality),
			CwebpBinary: defaultCwebpBinary,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Entries: DefaultEntries(),
	}
}

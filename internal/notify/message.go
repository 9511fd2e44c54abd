package notify

// Message is a fully rendered, platform-addressed push notification. It is
// ephemeral: built for a single dispatch, handed to the gateway, and dropped.
type Message struct {
	Token   string
	Title   string
	Body    string
	Data    map[string]string
	Android AndroidConfig
	APNS    APNSConfig
}

// AndroidConfig carries Android presentation hints.
type AndroidConfig struct {
	Priority    string
	ChannelID   string
	ClickAction string
	Sound       string
	Color       string
	Icon        string
}

// APNSConfig carries Apple presentation hints.
type APNSConfig struct {
	Badge int
	Sound string
}

// Options holds the presentation values that are an external contract with
// the mobile client. They come from configuration; see config.Push.
type Options struct {
	ChannelID   string
	ClickAction string
	Icon        string
}

package remote

// Frame types exchanged with the shell.
const (
	// FramePush tells the shell to append a history entry.
	FramePush = "nav:push"

	// FrameReplace tells the shell to overwrite the current entry.
	FrameReplace = "nav:replace"

	// FrameAddress announces the shell's current address. Sent once on
	// attach.
	FrameAddress = "address"

	// FramePopstate reports a shell-originated address change
	// (back/forward).
	FramePopstate = "popstate"
)

// Frame is one message on the shell connection.
type Frame struct {
	Type    string `json:"type"`
	Address string `json:"address"`
}

package domain

// Command is an intent coming from one of the surfaces (web, console).
type Command interface {
	Name() string
}

type PostMessageCommand struct {
	Author string
	Text   string
}

func (PostMessageCommand) Name() string { return "post_message" }

type ThrowFlyCommand struct{}

func (ThrowFlyCommand) Name() string { return "throw_fly" }

type MakeThemCroakCommand struct{}

func (MakeThemCroakCommand) Name() string { return "make_them_croak" }

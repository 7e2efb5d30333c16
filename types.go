package main

type point struct {
	X, Y int
}

func (p point) add(q point) point { return point{p.X + q.X, p.Y + q.Y} }
func (p point) sub(q point) point { return point{p.X - q.X, p.Y - q.Y} }

type Email struct {
	ID          string
	Sender      string
	Subject     string
	Preview     string
	IsRead      bool
	IsStarred   bool
	IsMinimized bool
	Position    point
	ZIndex      int
	Raw         []byte // RFC 5322 rendering, set for cards created by a send
}

func (e Email) height() int {
	if e.IsMinimized {
		return cardMinimizedHeight
	}
	return cardHeight
}

type Connector struct {
	ID           string
	FromEmailID  string
	StartX       int
	StartY       int
	StartOffsetX int
	StartOffsetY int
	EndX         int
	EndY         int
	ActionNode   *point
	ToEmailID    string
	State        ConnectorState
	Type         ConnectorType
	Label        string
}

func (c Connector) start() point { return point{c.StartX, c.StartY} }
func (c Connector) end() point   { return point{c.EndX, c.EndY} }

func (c Connector) isOpen() bool { return c.ActionNode != nil }

// EmailPatch merges every non-nil field into the target email.
type EmailPatch struct {
	Sender      *string
	Subject     *string
	Preview     *string
	Position    *point
	ZIndex      *int
	IsRead      *bool
	IsStarred   *bool
	IsMinimized *bool
}

// ConnectorPatch merges every non-nil field into the target connector.
// ActionNode and ToEmailID are mutually exclusive: setting one clears the
// other.
type ConnectorPatch struct {
	Start           *point
	End             *point
	ActionNode      *point
	ClearActionNode bool
	ToEmailID       *string
	State           *ConnectorState
	Type            *ConnectorType
	Label           *string
}

type Gesture struct {
	Kind        GestureKind
	EmailID     string
	ConnectorID string
	Offset      point
	Start       point
	Live        point
}

type Draft struct {
	Recipient string
	Subject   string
	Content   string
}

func (d Draft) complete() bool {
	return d.Recipient != "" && d.Subject != "" && d.Content != ""
}

type ComposeState struct {
	Kind        ComposeKind
	ConnectorID string
	Query       string
	Draft       Draft
}

type Action struct {
	ID    string
	Label string
}

// Hit is the classification of a canvas cell under the pointer.
type Hit struct {
	Kind        HitKind
	EmailID     string
	ConnectorID string
	ActionID    string
	Field       DraftField
	Button      ButtonKind
	MenuItem    int
}

type contextMenu struct {
	EmailID string
	At      point
}

// Snapshot is an immutable copy of the scene handed to the renderer.
type Snapshot struct {
	Emails     []Email
	Connectors []Connector
	Gesture    Gesture
	Compose    ComposeState
}


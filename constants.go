package main

type Mode int

const (
	ModeStartup Mode = iota
	ModeNormal
	ModeConfirm
)

type ConfirmAction int

const (
	ConfirmDeleteEmail ConfirmAction = iota
	ConfirmQuit
)

type GestureKind int

const (
	GestureIdle GestureKind = iota
	GestureDragCard
	GestureDrawConnector
	GestureDragActionNode
)

func (k GestureKind) String() string {
	switch k {
	case GestureIdle:
		return "idle"
	case GestureDragCard:
		return "dragging-card"
	case GestureDrawConnector:
		return "drawing-connector"
	case GestureDragActionNode:
		return "dragging-action-node"
	default:
		return "unknown"
	}
}

type ComposeKind int

const (
	ComposeClosed ComposeKind = iota
	ComposeSearching
	ComposeComposing
)

type ConnectorState string

const (
	StateActive    ConnectorState = "active"
	StatePending   ConnectorState = "pending"
	StateCompleted ConnectorState = "completed"
	StateError     ConnectorState = "error"
)

type ConnectorType string

const (
	TypeCompose ConnectorType = "compose"
	TypeSend    ConnectorType = "send"
	TypeForward ConnectorType = "forward"
	TypeReply   ConnectorType = "reply"
	TypeShare   ConnectorType = "share"
	TypeReport  ConnectorType = "report"
)

type DraftField int

const (
	FieldRecipient DraftField = iota
	FieldSubject
	FieldContent
)

// HitKind classifies what lies under the pointer. Lower values win when
// surfaces overlap; the context menu is an overlay and sits above all.
type HitKind int

const (
	HitMenuItem HitKind = iota
	HitDelete
	HitSearchInput
	HitDraftInput
	HitDropdown
	HitButton
	HitHandle
	HitActionNode
	HitCard
	HitCanvas
)

type ButtonKind int

const (
	ButtonNone ButtonKind = iota
	ButtonMinimize
	ButtonSend
	ButtonCancel
)

const (
	cardWidth           = 34
	cardHeight          = 7
	cardMinimizedHeight = 5
	previewLines        = 2
	previewLimit        = 100

	nodeWidth          = 32
	searchNodeHeight   = 3
	composeNodeHeight  = 10
	composeNodeTopRise = 5
	composeLabelWidth  = 9

	menuWidth = 16

	clickSuppressWindowMs = 100

	defaultActionAnchorOffset = 15
	defaultCardAnchorOffset   = 3
	defaultNewCardOffset      = 3
	defaultCurveClamp         = 12
)

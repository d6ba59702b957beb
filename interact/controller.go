package interact

import "math"

// CursorShape is a pointer affordance the host can show.
type CursorShape uint8

const (
	CursorDefault CursorShape = iota
	CursorPointer
)

func (s CursorShape) String() string {
	if s == CursorPointer {
		return "pointer"
	}
	return "default"
}

// Cursor is the host capability for changing the pointer affordance.
type Cursor interface {
	SetCursor(CursorShape)
}

// CursorFunc adapts a function to Cursor.
type CursorFunc func(CursorShape)

func (f CursorFunc) SetCursor(s CursorShape) { f(s) }

type EventKind uint8

const (
	PointerMove EventKind = iota
	PointerDown
	PointerUp
	PointerWheel
	PointerLeave
)

// PointerEvent is one pointer input in surface pixels. WheelDelta is
// positive when scrolling away from the user.
type PointerEvent struct {
	Kind       EventKind
	X, Y       float64
	WheelDelta float64
}

// PickFunc returns the destination whose marker is under (x, y).
type PickFunc func(x, y float64) (string, bool)

// Controller interprets pointer events. It is not safe for concurrent use;
// events are handled on the render loop goroutine.
type Controller struct {
	Camera   *OrbitCamera
	Cursor   Cursor
	Pick     PickFunc
	OnSelect func(name string)

	// RotateSpeed is radians per dragged pixel.
	RotateSpeed float64
	// ZoomStep is the distance moved per wheel unit.
	ZoomStep float64
	// DeadZone is how far the pointer must travel before a press turns into
	// a drag.
	DeadZone float64

	hover    string
	pressed  bool
	dragging bool
	downX    float64
	downY    float64
	lastX    float64
	lastY    float64
}

func NewController(cam *OrbitCamera, cursor Cursor, pick PickFunc, onSelect func(string)) *Controller {
	if cam == nil {
		cam = NewOrbitCamera()
	}
	return &Controller{
		Camera:      cam,
		Cursor:      cursor,
		Pick:        pick,
		OnSelect:    onSelect,
		RotateSpeed: 0.005,
		ZoomStep:    0.5,
		DeadZone:    4,
	}
}

// Hovered returns the destination under the pointer, if any.
func (c *Controller) Hovered() string { return c.hover }

func (c *Controller) Dragging() bool { return c.dragging }

// Reset drops any press and hover state and restores the default cursor
// if a marker was hovered. Call it when the hovered marker goes away
// without the pointer moving, and before discarding the controller.
func (c *Controller) Reset() {
	c.pressed = false
	c.dragging = false
	c.setHover("")
}

// SetSelected suspends auto-rotation while something is selected.
func (c *Controller) SetSelected(selected bool) {
	c.Camera.AutoRotate = !selected
}

func (c *Controller) Handle(ev PointerEvent) {
	switch ev.Kind {
	case PointerMove:
		c.move(ev.X, ev.Y)
	case PointerDown:
		c.pressed = true
		c.dragging = false
		c.downX, c.downY = ev.X, ev.Y
		c.lastX, c.lastY = ev.X, ev.Y
		if name, ok := c.pick(ev.X, ev.Y); ok && c.OnSelect != nil {
			c.OnSelect(name)
		}
	case PointerUp:
		c.pressed = false
		c.dragging = false
	case PointerWheel:
		c.Camera.Zoom(-ev.WheelDelta * c.ZoomStep)
	case PointerLeave:
		c.pressed = false
		c.dragging = false
		c.setHover("")
	}
}

func (c *Controller) move(x, y float64) {
	if c.pressed {
		if !c.dragging && math.Hypot(x-c.downX, y-c.downY) >= c.DeadZone {
			c.dragging = true
		}
		if c.dragging {
			c.Camera.Rotate(-(x-c.lastX)*c.RotateSpeed, -(y-c.lastY)*c.RotateSpeed)
		}
		c.lastX, c.lastY = x, y
	}
	name, _ := c.pick(x, y)
	c.setHover(name)
}

func (c *Controller) pick(x, y float64) (string, bool) {
	if c.Pick == nil {
		return "", false
	}
	return c.Pick(x, y)
}

func (c *Controller) setHover(name string) {
	if name == c.hover {
		return
	}
	prev := c.hover
	c.hover = name
	if c.Cursor == nil {
		return
	}
	switch {
	case prev == "" && name != "":
		c.Cursor.SetCursor(CursorPointer)
	case prev != "" && name == "":
		c.Cursor.SetCursor(CursorDefault)
	}
}

package choreographer

// Indicator is the display-side object that draws a cursor or touch marks
// on one logical display. The choreographer is its sole owner: once
// IndicatorRegistry.Drop releases the last reference it holds, the
// indicator's graphical resources must be released promptly by whatever
// concrete type implements this interface.
//
// Not every method applies to every IndicatorKind; one interface carries
// all of them (rather than modelling Mouse/Touch/Stylus as three disjoint
// interfaces), and the choreographer only calls the methods that apply to
// an indicator's kind. This
// mirrors how a single wlr_cursor-style object exposes move/show/hide
// regardless of which input class is currently driving it.
type Indicator interface {
	// SetDisplayViewport binds the indicator to a display's logical
	// bounds. ClearDisplayViewport unbinds it; DisplayID then reports
	// DisplayNone.
	SetDisplayViewport(v Viewport)
	ClearDisplayViewport()
	DisplayID() DisplayID

	// SetPosition/Position track the indicator's current logical
	// position. Meaningful for Mouse and Stylus kinds.
	SetPosition(x, y float32)
	Position() (x, y float32)

	// Show/Hide/IsPointerShown control cursor-style visibility (Mouse and
	// Stylus kinds). Fade is the stylus-specific name for Hide.
	Show()
	Hide()
	Fade()
	IsPointerShown() bool

	// SetSpots/ClearSpots/Spots track active touch contact points per
	// display. Meaningful for the Touch kind. ClearSpots removes the
	// display's entry from the mapping entirely, it does not merely empty
	// it.
	SetSpots(displayID DisplayID, pointerIDs []int32)
	ClearSpots(displayID DisplayID)
	Spots() map[DisplayID][]int32
}

// IndicatorFactory creates indicators on demand. The policy typically
// implements both IndicatorFactory and Policy.
type IndicatorFactory interface {
	CreateIndicator(kind IndicatorKind) Indicator
}

// Package domain holds the shared value types of the system: menu items,
// order lines, participant orders and the cloud room document. These types
// carry canonical JSON field names; the minified wire form used inside share
// tokens lives in the codec package.
package domain

// MenuItem is a single dish on a shared menu. Price fields are kept as
// strings end to end so the codec never loses precision or formatting;
// only consumers parse them.
type MenuItem struct {
	Name       string `json:"name"`
	Price      string `json:"price"`
	Note       string `json:"note"`
	HasAddon   bool   `json:"hasAddon"`
	AddonName  string `json:"addonName"`
	AddonPrice string `json:"addonPrice"`
}

// MenuEnvelope is the value a host distributes: the menu itself plus
// optional side-channel metadata (for example a callback URL that
// participants post their finished order to).
type MenuEnvelope struct {
	Menu  []MenuItem     `json:"menu"`
	Extra map[string]any `json:"extra,omitempty"`
}

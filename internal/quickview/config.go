// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package quickview stores the storefront quick view settings in shop and
// collection metafields.
package quickview

import (
	"errors"
	"fmt"
)

// Metafield coordinates of the settings.
const (
	Namespace     = "quickview"
	ShopKey       = "product_config"
	CollectionKey = "collection_config"
)

// Button placement relative to the product card.
const (
	PositionAbove = "above"
	PositionBelow = "below"
)

// Visibility toggles for parts of the quick view modal.
type Show struct {
	Price        bool `json:"price"`
	Button       bool `json:"button"`
	Description  bool `json:"description"`
	Variant      bool `json:"variant"`
	Image        bool `json:"image"`
	Title        bool `json:"title"`
	Availability bool `json:"availability"`
}

// Styling holds the modal's look. Colors and sizes are CSS values.
type Styling struct {
	Theme                       string `json:"theme"`
	Animation                   string `json:"animation"`
	Overlay                     bool   `json:"overlay"`
	CloseOnOverlayClick         bool   `json:"closeOnOverlayClick"`
	ButtonColor                 string `json:"buttonColor"`
	ButtonHoverColor            string `json:"buttonHoverColor"`
	ModalWidth                  string `json:"modalWidth"`
	ModalMaxHeight              string `json:"modalMaxHeight"`
	BorderRadius                string `json:"borderRadius"`
	Shadow                      string `json:"shadow"`
	CloseButtonColor            string `json:"closeButtonColor"`
	CloseButtonHoverBg          string `json:"closeButtonHoverBg"`
	TitleColor                  string `json:"titleColor"`
	PriceColor                  string `json:"priceColor"`
	DescriptionColor            string `json:"descriptionColor"`
	AddToCartButtonColor        string `json:"addToCartButtonColor"`
	AddToCartButtonHoverColor   string `json:"addToCartButtonHoverColor"`
	ViewProductButtonColor      string `json:"viewProductButtonColor"`
	ViewProductButtonHoverColor string `json:"viewProductButtonHoverColor"`
}

// Triggers selects what opens the modal.
type Triggers struct {
	Hover  bool `json:"hover"`
	Click  bool `json:"click"`
	Button bool `json:"button"`
}

// Content controls what the modal body renders.
type Content struct {
	MaxDescriptionLength int  `json:"maxDescriptionLength"`
	ShowAddToCart        bool `json:"showAddToCart"`
	ShowViewProduct      bool `json:"showViewProduct"`
	ShowAvailability     bool `json:"showAvailability"`
	ShowPrice            bool `json:"showPrice"`
	ShowImage            bool `json:"showImage"`
	ShowTitle            bool `json:"showTitle"`
	ShowDescription      bool `json:"showDescription"`
}

// Config is the stored quick view configuration. The button fields are
// what the storefront script reads; the rest configures the modal.
type Config struct {
	Enabled           bool   `json:"enabled"`
	ButtonText        string `json:"buttonText"`
	Position          string `json:"position"`
	ButtonStyle       string `json:"buttonStyle"`
	ButtonSize        string `json:"buttonSize"`
	ShowIcon          bool   `json:"showIcon"`
	Icon              string `json:"icon"`
	CustomColor       string `json:"customColor"`
	TextColor         string `json:"textColor"`
	ShowQuickviewIcon bool   `json:"showQuickviewIcon"`
	QuickviewIcon     string `json:"quickviewIcon"`

	Show     Show     `json:"show"`
	Styling  Styling  `json:"styling"`
	Triggers Triggers `json:"triggers"`
	Content  Content  `json:"content"`
}

// Default returns the configuration used when nothing is stored.
func Default() Config {
	return Config{
		Enabled:       true,
		ButtonText:    "Quick View",
		Position:      PositionBelow,
		ButtonStyle:   "primary",
		ButtonSize:    "medium",
		ShowIcon:      true,
		Icon:          "👁️",
		QuickviewIcon: "⚡",
		Show: Show{
			Price:        true,
			Button:       true,
			Description:  true,
			Variant:      true,
			Image:        true,
			Title:        true,
			Availability: true,
		},
		Styling: Styling{
			Theme:                       "light",
			Animation:                   "fade",
			Overlay:                     true,
			CloseOnOverlayClick:         true,
			ButtonColor:                 "#007bff",
			ButtonHoverColor:            "#0056b3",
			ModalWidth:                  "500px",
			ModalMaxHeight:              "80vh",
			BorderRadius:                "8px",
			Shadow:                      "0 10px 25px rgba(0, 0, 0, 0.2)",
			CloseButtonColor:            "#333",
			CloseButtonHoverBg:          "rgba(0, 0, 0, 0.1)",
			TitleColor:                  "#333",
			PriceColor:                  "#10b981",
			DescriptionColor:            "#6b7280",
			AddToCartButtonColor:        "#dc3545",
			AddToCartButtonHoverColor:   "#c82333",
			ViewProductButtonColor:      "#10b981",
			ViewProductButtonHoverColor: "#059669",
		},
		Triggers: Triggers{Click: true, Button: true},
		Content: Content{
			MaxDescriptionLength: 150,
			ShowAddToCart:        true,
			ShowViewProduct:      true,
			ShowAvailability:     true,
			ShowPrice:            true,
			ShowImage:            true,
			ShowTitle:            true,
			ShowDescription:      true,
		},
	}
}

var (
	buttonStyles = map[string]bool{"primary": true, "secondary": true, "outline": true, "custom": true}
	buttonSizes  = map[string]bool{"small": true, "medium": true, "large": true}
	themes       = map[string]bool{"light": true, "dark": true}
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid quickview config")

// Validate checks the enumerated fields.
func (c *Config) Validate() error {
	switch {
	case c.Position != PositionAbove && c.Position != PositionBelow:
		return fmt.Errorf("%w: position %q", ErrInvalid, c.Position)
	case !buttonStyles[c.ButtonStyle]:
		return fmt.Errorf("%w: button style %q", ErrInvalid, c.ButtonStyle)
	case !buttonSizes[c.ButtonSize]:
		return fmt.Errorf("%w: button size %q", ErrInvalid, c.ButtonSize)
	case c.Styling.Theme != "" && !themes[c.Styling.Theme]:
		return fmt.Errorf("%w: theme %q", ErrInvalid, c.Styling.Theme)
	case c.Content.MaxDescriptionLength < 0:
		return fmt.Errorf("%w: max description length %d", ErrInvalid, c.Content.MaxDescriptionLength)
	}
	return nil
}

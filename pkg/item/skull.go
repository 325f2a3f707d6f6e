package item

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrNoSkin = errors.New("texture has no skin url")

type texturesProperty struct {
	Textures struct {
		Skin struct {
			URL string `json:"url"`
		} `json:"SKIN"`
	} `json:"textures"`
}

// DecodeSkinURL extracts the skin URL from a base64 "textures" property value,
// the format published by head databases such as minecraft-heads.com.
func DecodeSkinURL(value string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		// some sources strip padding
		raw, err = base64.RawStdEncoding.DecodeString(value)
		if err != nil {
			return "", fmt.Errorf("decode texture: %w", err)
		}
	}
	var p texturesProperty
	if err := json.Unmarshal(raw, &p); err != nil {
		return "", fmt.Errorf("parse texture: %w", err)
	}
	if p.Textures.Skin.URL == "" {
		return "", ErrNoSkin
	}
	return p.Textures.Skin.URL, nil
}

// EncodeSkinURL builds the base64 "textures" property value for a skin URL.
func EncodeSkinURL(url string) string {
	var p texturesProperty
	p.Textures.Skin.URL = url
	raw, _ := json.Marshal(p)
	return base64.StdEncoding.EncodeToString(raw)
}

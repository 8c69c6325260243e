// smush_tags.go - SMUSH chunk tag vocabulary

package main

// MakeTag packs a four character code into its big-endian on-disk form.
func MakeTag(s string) uint32 {
	var t uint32
	for i := 0; i < 4; i++ {
		var c byte = ' '
		if i < len(s) {
			c = s[i]
		}
		t = t<<8 | uint32(c)
	}
	return t
}

// TagString renders a tag for diagnostics, replacing unprintable bytes with '.'.
func TagString(tag uint32) string {
	b := []byte{byte(tag >> 24), byte(tag >> 16), byte(tag >> 8), byte(tag)}
	for i, c := range b {
		if c < 0x20 || c > 0x7E {
			b[i] = '.'
		}
	}
	return string(b)
}

// Container kinds
var (
	TAG_ANIM = MakeTag("ANIM")
	TAG_SANM = MakeTag("SANM")
	TAG_SAUD = MakeTag("SAUD")
)

// Header records
var (
	TAG_AHDR = MakeTag("AHDR")
	TAG_SHDR = MakeTag("SHDR")
	TAG_FLHD = MakeTag("FLHD")
	TAG_FRME = MakeTag("FRME")
	TAG_ANNO = MakeTag("ANNO")
)

// Frame sub-chunks
var (
	TAG_FOBJ = MakeTag("FOBJ")
	TAG_ZFOB = MakeTag("ZFOB")
	TAG_BL16 = MakeTag("Bl16")
	TAG_NPAL = MakeTag("NPAL")
	TAG_XPAL = MakeTag("XPAL")
	TAG_STOR = MakeTag("STOR")
	TAG_FTCH = MakeTag("FTCH")
	TAG_IACT = MakeTag("IACT")
	TAG_WAVE = MakeTag("Wave")
	TAG_PSAD = MakeTag("PSAD")
	TAG_PSD2 = MakeTag("PSD2")
	TAG_PVOC = MakeTag("PVOC")
	TAG_GOST = MakeTag("GOST")
	TAG_SKIP = MakeTag("SKIP")
	TAG_GAME = MakeTag("GAME")
	TAG_GAM2 = MakeTag("GAM2")
	TAG_LOAD = MakeTag("LOAD")
	TAG_TEXT = MakeTag("TEXT")
	TAG_TRES = MakeTag("TRES")
	TAG_SEGA = MakeTag("SEGA")
	TAG_FADE = MakeTag("FADE")
)

// Audio stream records
var (
	TAG_SDAT = MakeTag("SDAT")
	TAG_STRK = MakeTag("STRK")
	TAG_IMUS = MakeTag("iMUS")
	TAG_MAP  = MakeTag("MAP ")
	TAG_FRMT = MakeTag("FRMT")
	TAG_REGN = MakeTag("REGN")
	TAG_STOP = MakeTag("STOP")
	TAG_DATA = MakeTag("DATA")
)

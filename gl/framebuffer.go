package gl

import (
	"fmt"

	"github.com/go-gl/gl/v4.6-core/gl"
)

// Framebuffer is an off-screen render target. The pattern engine renders one
// tile of a symbol into a Framebuffer (§4.8), the frame lifecycle snapshots
// the back buffer into one at the start of the LAST cycle (§4.11), and the
// PICK cycle reads color-index pixels back from one (§4.9).
//
// This type has no analogue in the teacher repo (a compute-shader library
// has no use for render targets); it follows the same Bind/Err/Delete shape
// as Texture and VertexBuffer above so it reads as part of the same package.
type Framebuffer struct {
	rid     uint32
	color   Texture
	hasColor bool
}

// NewFramebuffer creates a framebuffer with a freshly allocated color
// texture attachment of the given size and format.
func NewFramebuffer(width, height int, format uint32) (Framebuffer, error) {
	var fb Framebuffer
	tex, err := NewTexture[byte](TextureConfig{
		Width: width, Height: height, Format: format,
		MagFilter: gl.NEAREST, MinFilter: gl.NEAREST, Wrap: gl.CLAMP_TO_EDGE,
	}, nil)
	if err != nil {
		return fb, fmt.Errorf("framebuffer color attachment: %w", err)
	}
	fb.color = tex
	fb.hasColor = true
	gl.GenFramebuffers(1, &fb.rid)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.rid)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, tex.rid, 0)
	attachments := []uint32{gl.COLOR_ATTACHMENT0}
	gl.DrawBuffers(1, &attachments[0])
	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		return fb, FramebufferIncompleteError(status)
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return fb, Err()
}

// FramebufferIncompleteError reports the GL status code of a failed FBO
// completeness check (§7 FramebufferIncomplete).
type FramebufferIncompleteError uint32

func (e FramebufferIncompleteError) Error() string {
	return fmt.Sprintf("framebuffer incomplete: status 0x%x", uint32(e))
}

// ColorTexture returns the framebuffer's color attachment.
func (fb Framebuffer) ColorTexture() Texture { return fb.color }

// Bind makes fb the active render target. Bind(0-value Framebuffer) is not
// meaningful; use BindDefault to restore the window-system framebuffer.
func (fb Framebuffer) Bind() { gl.BindFramebuffer(gl.FRAMEBUFFER, fb.rid) }

// BindDefault restores rendering to the window system provided framebuffer.
func BindDefault() { gl.BindFramebuffer(gl.FRAMEBUFFER, 0) }

func (fb Framebuffer) Delete() {
	if fb.hasColor {
		fb.color.Delete()
	}
	gl.DeleteFramebuffers(1, &fb.rid)
}

// ReadPixels reads back an RGBA8 rectangle from whichever framebuffer
// (default or fb) is currently bound. Used by the PICK cycle's 8x8 window
// read-back and by read_fb_pixels/dump_to_png.
func ReadPixels(x, y, w, h int) []byte {
	buf := make([]byte, w*h*4)
	gl.ReadPixels(int32(x), int32(y), int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(buf))
	return buf
}

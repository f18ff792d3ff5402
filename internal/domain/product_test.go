package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhotoList(t *testing.T) {
	p := Product{Photos: "pc1-1.jpg,pc1-2.jpg, pc1-3.jpg ,"}
	assert.Equal(t, []string{"pc1-1.jpg", "pc1-2.jpg", "pc1-3.jpg"}, p.PhotoList())

	var empty Product
	assert.Empty(t, empty.PhotoList())
}

func TestSetPhotos(t *testing.T) {
	var p Product
	p.SetPhotos([]string{"a.jpg", "b.jpg"})
	assert.Equal(t, "a.jpg,b.jpg", p.Photos)
	assert.Equal(t, "a.jpg", p.Image)

	p.SetPhotos(nil)
	assert.Empty(t, p.Photos)
	assert.Empty(t, p.Image)
}

package conversion

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradientRGBA(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(x * 7 % 256),
				G: uint8(y * 11 % 256),
				B: uint8((x*y + 3) % 256),
				A: 255,
			})
		}
	}
	return img
}

func TestRGBARoundTrip(t *testing.T) {
	src := gradientRGBA(37, 23)

	mat, err := ImageToMat(src, nil, "roundtrip")
	require.NoError(t, err)
	defer mat.Close()

	assert.Equal(t, 37, mat.Cols())
	assert.Equal(t, 23, mat.Rows())
	assert.Equal(t, 3, mat.Channels())

	back, err := MatToImage(mat)
	require.NoError(t, err)

	result, ok := back.(*image.RGBA)
	require.True(t, ok)
	assert.Equal(t, src.Bounds(), result.Bounds())
	assert.Equal(t, src.Pix, result.Pix)
}

func TestNRGBAConversion(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}

	mat, err := ImageToMat(src, nil, "nrgba")
	require.NoError(t, err)
	defer mat.Close()

	data, err := mat.ToBytes()
	require.NoError(t, err)
	require.Len(t, data, 4*4*3)
	assert.Equal(t, uint8(50), data[0], "B channel")
	assert.Equal(t, uint8(100), data[1], "G channel")
	assert.Equal(t, uint8(200), data[2], "R channel")
}

func TestPremultipliedRGBAIsUnmultiplied(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	// premultiplied half-transparent pixel, and a fully transparent one
	src.SetRGBA(0, 0, color.RGBA{R: 64, G: 32, B: 16, A: 128})
	src.SetRGBA(1, 0, color.RGBA{R: 0, G: 0, B: 0, A: 0})

	mat, err := ImageToMat(src, nil, "premultiplied")
	require.NoError(t, err)
	defer mat.Close()

	data, err := mat.ToBytes()
	require.NoError(t, err)
	require.Len(t, data, 2*3)
	assert.Equal(t, uint8(31), data[0], "B channel")
	assert.Equal(t, uint8(63), data[1], "G channel")
	assert.Equal(t, uint8(127), data[2], "R channel")
	assert.Equal(t, []byte{0, 0, 0}, data[3:6])
}

func TestGrayConversion(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 8, 8))
	for i := range src.Pix {
		src.Pix[i] = uint8(i * 3 % 256)
	}

	mat, err := ImageToMat(src, nil, "gray")
	require.NoError(t, err)
	defer mat.Close()

	assert.Equal(t, 3, mat.Channels())

	data, err := mat.ToBytes()
	require.NoError(t, err)
	for px := 0; px < 8*8; px++ {
		b, g, r := data[px*3], data[px*3+1], data[px*3+2]
		require.Equal(t, b, g)
		require.Equal(t, g, r)
	}
}

func TestGenericImageConversion(t *testing.T) {
	src := image.NewYCbCr(image.Rect(0, 0, 12, 10), image.YCbCrSubsampleRatio420)

	mat, err := ImageToMat(src, nil, "generic")
	require.NoError(t, err)
	defer mat.Close()

	assert.Equal(t, 12, mat.Cols())
	assert.Equal(t, 10, mat.Rows())
}

func TestImageToMatNil(t *testing.T) {
	_, err := ImageToMat(nil, nil, "nil")
	assert.Error(t, err)
}

func TestMatToImageReleased(t *testing.T) {
	mat, err := ImageToMat(gradientRGBA(4, 4), nil, "released")
	require.NoError(t, err)
	mat.Close()

	_, err = MatToImage(mat)
	assert.Error(t, err)
}

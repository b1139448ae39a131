package engine

// ColorSpace mirrors AVColorSpace (frame metadata). Kept in sync with libavutil/pixfmt.h.
type ColorSpace int32

// ColorRange mirrors AVColorRange.
type ColorRange int32

const (
	ColorSpaceUnspecified ColorSpace = 2
	ColorSpaceBT709       ColorSpace = 1
	ColorSpaceFCC         ColorSpace = 4
	ColorSpaceBT470BG     ColorSpace = 5
	ColorSpaceSMPTE170M   ColorSpace = 6 // commonly used for BT.601
	ColorSpaceSMPTE240M   ColorSpace = 7
	ColorSpaceBT2020NCL   ColorSpace = 9
	ColorSpaceBT2020CL    ColorSpace = 10

	// Aliases for readability.
	ColorSpaceBT601  ColorSpace = ColorSpaceSMPTE170M
	ColorSpaceBT2020 ColorSpace = ColorSpaceBT2020NCL
)

const (
	ColorRangeUnspecified ColorRange = 0
	ColorRangeMPEG        ColorRange = 1 // limited (16-235)
	ColorRangeJPEG        ColorRange = 2 // full (0-255)
)

// Full reports whether r explicitly selects full range.
func (r ColorRange) Full() bool {
	return r == ColorRangeJPEG
}

func (cs ColorSpace) String() string {
	switch cs {
	case ColorSpaceUnspecified, 0:
		return "unspecified"
	case ColorSpaceBT709:
		return "bt709"
	case ColorSpaceFCC:
		return "fcc"
	case ColorSpaceBT470BG:
		return "bt470bg"
	case ColorSpaceSMPTE170M:
		return "bt601"
	case ColorSpaceSMPTE240M:
		return "smpte240m"
	case ColorSpaceBT2020NCL, ColorSpaceBT2020CL:
		return "bt2020"
	}
	return "unknown"
}

func (r ColorRange) String() string {
	switch r {
	case ColorRangeMPEG:
		return "limited"
	case ColorRangeJPEG:
		return "full"
	}
	return "unspecified"
}

// Specified reports whether cs carries an explicit matrix choice.
func (cs ColorSpace) Specified() bool {
	return cs != ColorSpaceUnspecified && cs != 0
}

// SWS_CS_* identifiers used by sws_getCoefficients.
const (
	swsCSITU709    int32 = 1
	swsCSFCC       int32 = 4
	swsCSITU601    int32 = 5 // also SWS_CS_SMPTE170M and SWS_CS_DEFAULT
	swsCSSMPTE240M int32 = 7
	swsCSBT2020    int32 = 9
)

// ToSwsColorspace maps AVColorSpace values to swscale SWS_CS_* values.
//
// swscale uses SWS_CS_SMPTE170M == 5 for BT.601 coefficients, while AVColorSpace uses
// AVCOL_SPC_SMPTE170M == 6. This helper normalizes common cases.
func ToSwsColorspace(cs ColorSpace) int32 {
	switch cs {
	case ColorSpaceBT709:
		return swsCSITU709
	case ColorSpaceFCC:
		return swsCSFCC
	case ColorSpaceSMPTE240M:
		return swsCSSMPTE240M
	case ColorSpaceBT2020NCL, ColorSpaceBT2020CL:
		return swsCSBT2020
	default:
		return swsCSITU601
	}
}

// Coefficient tables, identical to libswscale's ff_yuv2rgb_coeffs.
var coefficients = map[int32]Matrix{
	swsCSITU709:    {117489, 138438, 13975, 34925}, // ITU-R Rec. 709 (1990)
	swsCSFCC:       {117579, 136230, 16907, 35559}, // FCC
	swsCSITU601:    {104597, 132201, 25675, 53279}, // ITU-R Rec. 601 (1982)
	swsCSSMPTE240M: {117579, 136230, 16907, 35559}, // SMPTE 240M (1987)
	swsCSBT2020:    {110013, 140363, 12277, 42626}, // Bt-2020
}

// StaticCoefficients returns the coefficient table for cs without consulting
// an engine.
func StaticCoefficients(cs ColorSpace) Matrix {
	return coefficients[ToSwsColorspace(cs)]
}

// MatrixForFrame picks the conversion matrix for a frame: the explicit
// colorspace when one is tagged, otherwise BT.709 for HD geometry
// (width >= 1280 or height >= 720) and BT.601 below that.
func MatrixForFrame(e Engine, cs ColorSpace, width, height int) Matrix {
	if !cs.Specified() {
		if width >= 1280 || height >= 720 {
			cs = ColorSpaceBT709
		} else {
			cs = ColorSpaceBT601
		}
	}
	return e.Coefficients(cs)
}

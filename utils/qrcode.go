package utils

import (
	"errors"
	"net/url"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	// SurveyPagePath là trang khảo sát mà mã QR trỏ tới.
	SurveyPagePath = "/survey-page/"
	QRCodeDir      = "qr_codes"
	qrCodeSize     = 256
)

var ErrEmptyCourtCode = errors.New("kbju_code rỗng")

// SurveyURL trả về link khảo sát của một toà án: <base>/survey-page/?kbju_code=<code>
func SurveyURL(baseURL, code string) string {
	base := strings.TrimRight(baseURL, "/")
	q := url.Values{}
	q.Set("kbju_code", code)
	return base + SurveyPagePath + "?" + q.Encode()
}

// GenerateQRCode mã hoá SurveyURL thành ảnh PNG. Không đụng tới storage.
func GenerateQRCode(baseURL, code string) ([]byte, error) {
	if strings.TrimSpace(code) == "" {
		return nil, ErrEmptyCourtCode
	}
	return qrcode.Encode(SurveyURL(baseURL, code), qrcode.Medium, qrCodeSize)
}

// QRCodePath là đường dẫn lưu ảnh QR của toà án trong storage.
// Mã được escape nên luôn nằm trong QRCodeDir.
func QRCodePath(code string) string {
	return QRCodeDir + "/" + url.PathEscape(code) + ".png"
}

package utils

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/skip2/go-qrcode"
)

// GenerateDropoffQR génère le QR code de dépôt en point relais,
// en base64 prêt à mettre dans <img src="...">
func GenerateDropoffQR(returnID, orderID string) (string, error) {
	payload := fmt.Sprintf("BMRET|%s|%s", returnID, orderID)

	png, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// RenderReturnSlipPDF charge la page bordereau du front et l'imprime en PDF.
// frontendURL doit ressembler à: http://localhost:3000/return-slip
func RenderReturnSlipPDF(frontendURL, returnID, qrBase64 string) ([]byte, error) {
	q := url.Values{}
	q.Set("id", returnID)
	q.Set("qr", qrBase64)

	fullURL := fmt.Sprintf("%s?%s", frontendURL, q.Encode())

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	// timeout pour éviter de bloquer
	ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var pdfBuf []byte

	err := chromedp.Run(ctx,
		chromedp.Navigate(fullURL),
		chromedp.WaitVisible("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfBuf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}

	return pdfBuf, nil
}

// GetFrontendReturnSlipBaseURL récupère l'URL du bordereau côté front
func GetFrontendReturnSlipBaseURL() string {
	u := os.Getenv("FRONTEND_RETURN_SLIP_URL")
	if u == "" {
		// fallback local dev
		return "http://localhost:3000/return-slip"
	}
	return u
}

package utils

import (
	"fmt"
	"log"

	"beautymart_back_end/internal/models"
	"beautymart_back_end/internal/returns"
)

// SendReturnStatusEmail notifie le client d'un changement de statut de sa demande
func SendReturnStatusEmail(req models.ReturnRequest, userEmail string, newStatus returns.Status) error {
	subject := getReturnEmailSubject(newStatus)
	html := generateReturnStatusHTML(req, newStatus)

	err := SendEmail(userEmail, subject, html, nil, "")
	if err != nil {
		log.Printf("❌ Erreur envoi email statut retour: %v", err)
		return err
	}

	log.Printf("📧 Email de statut retour envoyé: %s → %s", newStatus, userEmail)
	return nil
}

func getReturnEmailSubject(status returns.Status) string {
	switch status {
	case returns.StatusApproved:
		return "✅ Votre demande de retour est acceptée - BeautyMart"
	case returns.StatusDenied:
		return "❌ Votre demande de retour est refusée - BeautyMart"
	case returns.StatusRefunded:
		return "💰 Remboursement effectué - BeautyMart"
	case returns.StatusExchanged:
		return "🔄 Votre échange est en route - BeautyMart"
	case returns.StatusClosed:
		return "📋 Votre demande de retour est clôturée - BeautyMart"
	default:
		return "📋 Mise à jour de votre demande de retour - BeautyMart"
	}
}

func getReturnStatusMessage(status returns.Status) string {
	switch status {
	case returns.StatusApproved:
		return "Votre demande de retour a été acceptée. Vous trouverez ci-dessous les instructions de dépôt."
	case returns.StatusDenied:
		return "Après examen, nous ne pouvons pas accepter cette demande de retour."
	case returns.StatusRefunded:
		return "Votre remboursement a été traité. Il apparaîtra sur votre compte sous 5 à 10 jours ouvrés."
	case returns.StatusExchanged:
		return "Votre article de remplacement a été expédié."
	case returns.StatusClosed:
		return "Votre demande de retour est maintenant clôturée."
	default:
		return "Le statut de votre demande de retour a été mis à jour."
	}
}

func generateReturnStatusHTML(req models.ReturnRequest, status returns.Status) string {
	resolutionHTML := ""
	if req.ResolutionNote != "" {
		resolutionHTML = fmt.Sprintf(`
		<p style="margin: 20px 0; padding: 15px; background-color: #f8f9fa; border-left: 4px solid #667eea; color: #333;">
			<strong>Note de notre équipe :</strong><br>%s
		</p>`, req.ResolutionNote)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Mise à jour de votre retour</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Mise à jour de votre demande de retour</h2>
		<p>Bonjour,</p>
		<p>%s</p>

		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<tr>
				<td style="padding: 10px; border: 1px solid #ddd; background-color: #f0f0f0;">Demande</td>
				<td style="padding: 10px; border: 1px solid #ddd;">%s</td>
			</tr>
			<tr>
				<td style="padding: 10px; border: 1px solid #ddd; background-color: #f0f0f0;">Commande</td>
				<td style="padding: 10px; border: 1px solid #ddd;">%s</td>
			</tr>
			<tr>
				<td style="padding: 10px; border: 1px solid #ddd; background-color: #f0f0f0;">Nouveau statut</td>
				<td style="padding: 10px; border: 1px solid #ddd;"><strong>%s</strong></td>
			</tr>
		</table>
		%s
		<p style="margin-top: 30px; color: #555;">
			Cordialement,<br>
			<strong>L'équipe BeautyMart</strong>
		</p>
	</div>
</body>
</html>`, getReturnStatusMessage(status), req.ID.String(), req.OrderID.String(), status, resolutionHTML)
}

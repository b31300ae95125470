package content

import (
	"creatorhub-backend/models"
)

// CanAccess décide si un spectateur peut voir un contenu, à partir de son
// niveau payé courant envers le créateur. Ordre de décision:
//  1. le créateur voit toujours son propre contenu
//  2. un contenu de niveau 0 est visible par tout utilisateur connecté
//  3. sinon le niveau payé doit atteindre le niveau requis
//
// Aucun autre signal n'entre en jeu: un Follow est social, jamais payant,
// et ne doit pas être confondu avec un abonnement.
func CanAccess(viewerID string, content *models.Content, viewerLevel int) bool {
	if viewerID == content.CreatorID {
		return true
	}
	if content.RequiredLevel == 0 {
		return true
	}
	return viewerLevel >= content.RequiredLevel
}

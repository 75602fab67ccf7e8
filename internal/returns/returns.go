package returns

import (
	"errors"
	"fmt"
	"sort"
)

// Statuts possibles d'une demande de retour
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusDenied    Status = "denied"
	StatusRefunded  Status = "refunded"
	StatusExchanged Status = "exchanged"
	StatusClosed    Status = "closed"
)

// Types de demande : remboursement ou échange
type Type string

const (
	TypeRefund   Type = "refund"
	TypeExchange Type = "exchange"
)

// Raisons de retour proposées au client (liste fermée)
type Reason string

const (
	ReasonDamaged        Reason = "Damaged/defective item"
	ReasonWrongItem      Reason = "Wrong item received"
	ReasonNotAsDescribed Reason = "Not as described"
	ReasonArrivedLate    Reason = "Arrived late"
	ReasonChangedMind    Reason = "Changed mind"
	ReasonOther          Reason = "Other"
)

var (
	ErrInvalidStatus     = errors.New("statut de retour invalide")
	ErrInvalidType       = errors.New("type de retour invalide")
	ErrInvalidReason     = errors.New("raison de retour invalide")
	ErrTerminalStatus    = errors.New("la demande est dans un état final")
	ErrForbiddenStep     = errors.New("transition de statut non autorisée")
	ErrTypeMismatch      = errors.New("statut incompatible avec le type de la demande")
	ErrNoItems           = errors.New("sélectionnez au moins un article à retourner")
	ErrQuantityExceeded  = errors.New("quantité retournée supérieure à la quantité achetée")
	ErrUnknownOrderLine  = errors.New("article absent de la commande d'origine")
	ErrNegativeQuantity  = errors.New("quantité invalide")
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusDenied, StatusRefunded, StatusExchanged, StatusClosed:
		return true
	}
	return false
}

// IsTerminal indique si plus aucune transition n'est possible
func (s Status) IsTerminal() bool {
	switch s {
	case StatusDenied, StatusRefunded, StatusExchanged, StatusClosed:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// CanTransitionTo vérifie la table de transitions du workflow retours :
// pending → approved | denied, approved → refunded | exchanged | closed.
// Les états denied, refunded, exchanged et closed sont finaux.
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusPending:
		return target == StatusApproved || target == StatusDenied
	case StatusApproved:
		return target == StatusRefunded || target == StatusExchanged || target == StatusClosed
	case StatusDenied, StatusRefunded, StatusExchanged, StatusClosed:
		return false
	}
	return false
}

func (t Type) IsValid() bool {
	return t == TypeRefund || t == TypeExchange
}

func (r Reason) IsValid() bool {
	switch r {
	case ReasonDamaged, ReasonWrongItem, ReasonNotAsDescribed, ReasonArrivedLate, ReasonChangedMind, ReasonOther:
		return true
	}
	return false
}

// Reasons retourne la liste complète des raisons (pour le formulaire client)
func Reasons() []Reason {
	return []Reason{ReasonDamaged, ReasonWrongItem, ReasonNotAsDescribed, ReasonArrivedLate, ReasonChangedMind, ReasonOther}
}

// Transition valide un changement de statut demandé par un admin.
// force permet l'override opérationnel : la table de transitions est ignorée,
// mais le statut cible doit rester un statut connu. Sans force, on refuse
// aussi refunded sur un échange et exchanged sur un remboursement.
func Transition(current Status, target Status, reqType Type, force bool) error {
	if !target.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, target)
	}

	if force {
		return nil
	}

	if current.IsTerminal() {
		return fmt.Errorf("%w (%s)", ErrTerminalStatus, current)
	}

	if !current.CanTransitionTo(target) {
		return fmt.Errorf("%w: %s → %s", ErrForbiddenStep, current, target)
	}

	if target == StatusRefunded && reqType != TypeRefund {
		return fmt.Errorf("%w: refunded exige une demande de type refund", ErrTypeMismatch)
	}
	if target == StatusExchanged && reqType != TypeExchange {
		return fmt.Errorf("%w: exchanged exige une demande de type exchange", ErrTypeMismatch)
	}

	return nil
}

// Item est une ligne de la demande de retour (produit + quantité retournée)
type Item struct {
	ProductID string `json:"product"`
	Quantity  int    `json:"quantity"`
}

// ValidateItems filtre les lignes à quantité nulle (le client a désélectionné
// l'article) puis vérifie les quantités contre la quantité achetée sur la
// commande d'origine. Les lignes dupliquées pour un même produit sont cumulées
// avant comparaison, sinon deux lignes sous le plafond dépasseraient l'achat.
// Retourne la liste nettoyée, dans l'ordre de soumission.
func ValidateItems(items []Item, purchased map[string]int) ([]Item, error) {
	kept := make([]Item, 0, len(items))
	totals := make(map[string]int, len(items))

	for _, item := range items {
		if item.Quantity == 0 {
			continue
		}
		if item.Quantity < 0 {
			return nil, fmt.Errorf("%w: %d pour le produit %s", ErrNegativeQuantity, item.Quantity, item.ProductID)
		}

		bought, ok := purchased[item.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownOrderLine, item.ProductID)
		}

		totals[item.ProductID] += item.Quantity
		if totals[item.ProductID] > bought {
			return nil, fmt.Errorf("%w: %d > %d pour le produit %s", ErrQuantityExceeded, totals[item.ProductID], bought, item.ProductID)
		}

		kept = append(kept, item)
	}

	if len(kept) == 0 {
		return nil, ErrNoItems
	}

	return kept, nil
}

// ReasonCount est une entrée des analytics de raisons
type ReasonCount struct {
	Reason Reason `json:"reason"`
	Count  int    `json:"count"`
}

// CountReasons agrège les raisons de toutes les demandes (statut confondu).
// Tri déterministe : count décroissant puis raison alphabétique, pour que
// le dashboard admin reçoive toujours le même ordre.
func CountReasons(reasons []Reason) []ReasonCount {
	byReason := make(map[Reason]int)
	for _, r := range reasons {
		byReason[r]++
	}

	counts := make([]ReasonCount, 0, len(byReason))
	for reason, count := range byReason {
		counts = append(counts, ReasonCount{Reason: reason, Count: count})
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Reason < counts[j].Reason
	})

	return counts
}

// Package cfdi parses Mexican electronic tax invoices (CFDI 3.3 and 4.0).
package cfdi

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"

	"enertika/internal/domain"
	"enertika/internal/logger"
)

// DefaultMaxBytes is the largest document Parse accepts.
const DefaultMaxBytes int64 = 10 * 1024 * 1024

const (
	minContentBytes = 100
	headerProbeSize = 500
)

var (
	ErrTooLarge          = errors.New("file exceeds the maximum XML size")
	ErrMalformed         = errors.New("malformed XML")
	ErrMissingUUID       = errors.New("missing UUID (TimbreFiscalDigital not found)")
	ErrInvalidUUID       = errors.New("invalid UUID in TimbreFiscalDigital")
	ErrMissingIssuerRFC  = errors.New("missing issuer RFC")
	ErrMissingIssuerName = errors.New("missing issuer name")
	ErrMissingTotal      = errors.New("missing total amount")
)

// Parser extracts InvoiceRecords from CFDI XML documents.
type Parser struct {
	maxBytes int64
	log      zerolog.Logger
}

// NewParser creates a Parser that rejects documents above maxBytes.
// A non-positive maxBytes selects DefaultMaxBytes.
func NewParser(maxBytes int64) *Parser {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Parser{maxBytes: maxBytes, log: logger.WithComponent("cfdi_parser")}
}

// ValidateContent is a cheap pre-check run before Parse. It returns a
// human-readable reason when the content is clearly not a CFDI, or "".
func (p *Parser) ValidateContent(content []byte) string {
	if int64(len(content)) > p.maxBytes {
		return p.sizeError().Error()
	}
	if len(content) < minContentBytes {
		return "XML file is too small"
	}
	header := content
	if len(header) > headerProbeSize {
		header = header[:headerProbeSize]
	}
	header = bytes.ToLower(header)
	if !bytes.Contains(header, []byte("comprobante")) && !bytes.Contains(header, []byte("cfdi")) {
		return "not a valid CFDI XML"
	}
	return ""
}

// Parse decodes a CFDI document. Missing mandatory data rejects the whole document.
func (p *Parser) Parse(content []byte, filename string) (*domain.InvoiceRecord, error) {
	if int64(len(content)) > p.maxBytes {
		return nil, p.sizeError()
	}

	root, err := decode(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	issuer := root.find("Emisor")
	receiver := root.find("Receptor")
	stamp := root.find("TimbreFiscalDigital")

	rawUUID := stamp.attr("UUID")
	if rawUUID == "" {
		return nil, ErrMissingUUID
	}
	parsedUUID, err := uuid.Parse(rawUUID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidUUID, rawUUID)
	}

	issuerRFC := issuer.attr("Rfc")
	if issuerRFC == "" {
		return nil, ErrMissingIssuerRFC
	}
	issuerName := issuer.attr("Nombre")
	if issuerName == "" {
		return nil, ErrMissingIssuerName
	}
	total, err := decimal.NewFromString(root.attr("Total"))
	if err != nil {
		return nil, ErrMissingTotal
	}

	currency := domain.Currency(strings.ToUpper(root.attr("Moneda")))
	if currency == "" {
		currency = domain.CurrencyMXN
	}

	rec := &domain.InvoiceRecord{
		UUID:             strings.ToUpper(parsedUUID.String()),
		Series:           root.attr("Serie"),
		Folio:            root.attr("Folio"),
		IssueDate:        root.attr("Fecha"),
		ReceiptType:      root.attr("TipoDeComprobante"),
		IssuerRFC:        strings.ToUpper(issuerRFC),
		IssuerName:       issuerName,
		IssuerRegime:     issuer.attr("RegimenFiscal"),
		ReceiverRFC:      receiver.attr("Rfc"),
		ReceiverName:     receiver.attr("Nombre"),
		Subtotal:         decimalOrZero(root.attr("SubTotal")),
		Total:            total,
		Currency:         currency,
		PaymentMethod:    root.attr("MetodoPago"),
		PaymentForm:      root.attr("FormaPago"),
		LineItems:        lineItems(root),
		RelatedDocuments: relatedDocuments(root),
	}
	rec.Kind = Classify(rec.LineItems, rec.RelatedDocuments)

	p.log.Info().
		Str("file", filename).
		Str("uuid", rec.UUID[:8]).
		Str("rfc", rec.IssuerRFC).
		Str("total", rec.Total.String()).
		Str("currency", string(rec.Currency)).
		Str("kind", string(rec.Kind)).
		Int("line_items", len(rec.LineItems)).
		Int("related", len(rec.RelatedDocuments)).
		Msg("cfdi parsed")

	return rec, nil
}

func (p *Parser) sizeError() error {
	return fmt.Errorf("%w of %dMB", ErrTooLarge, p.maxBytes/(1024*1024))
}

func lineItems(root *node) []domain.LineItem {
	items := []domain.LineItem{}
	for _, n := range root.findAll("Concepto") {
		desc := n.attr("Descripcion")
		if desc == "" {
			continue
		}
		items = append(items, domain.LineItem{
			Description: desc,
			Quantity:    decimalOrZero(n.attr("Cantidad")),
			UnitPrice:   decimalOrZero(n.attr("ValorUnitario")),
			Amount:      decimalOrZero(n.attr("Importe")),
			Unit:        n.attr("Unidad"),
			ProductKey:  n.attr("ClaveProdServ"),
			UnitKey:     n.attr("ClaveUnidad"),
		})
	}
	return items
}

func relatedDocuments(root *node) []domain.RelatedDocument {
	related := []domain.RelatedDocument{}
	for _, group := range root.findAll("CfdiRelacionados") {
		relType := group.attr("TipoRelacion")
		for _, child := range group.findAll("CfdiRelacionado") {
			id := child.attr("UUID")
			if id == "" {
				continue
			}
			related = append(related, domain.RelatedDocument{
				UUID:                strings.ToUpper(id),
				RelationType:        relType,
				RelationDescription: RelationDescription(relType),
			})
		}
	}
	return related
}

func decimalOrZero(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// node is a namespace-agnostic XML element tree.
type node struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []node     `xml:",any"`
}

func decode(content []byte) (*node, error) {
	dec := xml.NewDecoder(bytes.NewReader(content))
	dec.CharsetReader = charsetReader
	var root node
	if err := dec.Decode(&root); err != nil {
		return nil, err
	}
	return &root, nil
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(label) {
	case "iso-8859-1", "latin1", "latin-1":
		return charmap.ISO8859_1.NewDecoder().Reader(input), nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewDecoder().Reader(input), nil
	}
	return nil, fmt.Errorf("unsupported charset %q", label)
}

// attr returns the attribute with the given local name, or "" on a nil node.
func (n *node) attr(local string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attrs {
		if a.Name.Local == local {
			return strings.TrimSpace(a.Value)
		}
	}
	return ""
}

// find returns the first descendant in document order with the given local name.
func (n *node) find(local string) *node {
	if n == nil {
		return nil
	}
	for i := range n.Children {
		c := &n.Children[i]
		if c.XMLName.Local == local {
			return c
		}
		if found := c.find(local); found != nil {
			return found
		}
	}
	return nil
}

// findAll returns every descendant with the given local name, in document order.
func (n *node) findAll(local string) []*node {
	var out []*node
	if n == nil {
		return out
	}
	for i := range n.Children {
		c := &n.Children[i]
		if c.XMLName.Local == local {
			out = append(out, c)
		}
		out = append(out, c.findAll(local)...)
	}
	return out
}

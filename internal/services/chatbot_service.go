package services

import (
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"
	"unicode"

	"pilates_reserva/internal/config"
	"pilates_reserva/internal/redis"
	"pilates_reserva/internal/repository"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	chatLookaheadDays = 14
	chatMaxResults    = 8
	fuzzyThreshold    = 0.60
)

var (
	nonAlnumRe    = regexp.MustCompile(`[^a-z0-9\s]`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
	accentRemover = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	titleCaser    = cases.Title(language.Spanish)
)

// NormalizeText lowercases, strips accents and punctuation and collapses
// whitespace, so keyword matching is insensitive to how users type.
func NormalizeText(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if out, _, err := transform.String(accentRemover, s); err == nil {
		s = out
	}
	s = nonAlnumRe.ReplaceAllString(s, " ")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// similarity is a Levenshtein-based ratio in [0, 1].
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	la, lb := len([]rune(a)), len([]rune(b))
	longest := la
	if lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}

// faqEntry pairs canonical question phrasings with keywords and an answer.
type faqEntry struct {
	questions []string
	keywords  []string
	answer    string
}

var faqKB = []faqEntry{
	{
		questions: []string{"tipos de clases", "reformer", "mat", "full power", "nivel", "principiantes"},
		keywords:  []string{"reformer", "mat", "nivel", "principiante", "intermedio", "avanzado"},
		answer: "Trabajamos con Reformer, Mat y clases enfocadas. Para principiantes, recomendamos un bloque guiado. " +
			"¿Tienes alguna preferencia o limitación física a considerar?",
	},
	{
		questions: []string{"politicas", "tardanza", "cancelacion", "reagendar", "reprogramar"},
		keywords:  []string{"politica", "tarde", "cancel", "reagendar", "reprogramar"},
		answer: "Puedes reagendar con al menos 12 horas de anticipación según disponibilidad. " +
			"Si llegas tarde, haremos lo posible por integrarte sin afectar la clase.",
	},
	{
		questions: []string{"contacto", "hablar", "humano", "telefono", "whatsapp"},
		keywords:  []string{"humano", "asesor"},
		answer: "Claro, puedo derivarte. Déjame un nombre y un medio de contacto (teléfono o correo) " +
			"y te escribe una persona del equipo.",
	},
}

// quickFAQ maps multi-word keys where every word must appear in the message.
var quickFAQ = []struct{ key, answer string }{
	{"metodo pago", "Aceptamos transferencia y tarjetas a través de link de pago."},
	{"estacionamiento", "Contamos con estacionamiento en el edificio (según disponibilidad)."},
	{"duracion", "Cada clase dura 55 minutos aproximadamente."},
	{"covid", "Mantenemos medidas de higiene y sanitización de equipos entre clases."},
}

const genericHelp = "Gracias por tu mensaje. Puedo ayudarte con *horarios*, *ubicación/dirección*, " +
	"*tipos de clases*, *precios* y *cómo reservar*. " +
	"Si prefieres, escríbenos a contacto@pilatesreserva.cl."

type ChatbotService interface {
	// Reply maps a free-text message to an answer; it never fails, worst
	// case it returns the generic help text.
	Reply(message string) string
}

type chatbotService struct {
	classRepo repository.ClassRepository
	cache     *redis.Client // optional
	cfg       *config.Config
}

func NewChatbotService(classRepo repository.ClassRepository, cache *redis.Client, cfg *config.Config) ChatbotService {
	return &chatbotService{classRepo: classRepo, cache: cache, cfg: cfg}
}

func containsAny(msg string, keywords ...string) bool {
	for _, k := range keywords {
		if strings.Contains(msg, k) {
			return true
		}
	}
	return false
}

func detectClassType(msg string) string {
	switch {
	case strings.Contains(msg, "reformer"):
		return "reformer"
	case strings.Contains(msg, "mat"):
		return "mat"
	case strings.Contains(msg, "grupal"), strings.Contains(msg, "grupo"):
		return "grupal"
	}
	return ""
}

func (s *chatbotService) Reply(message string) string {
	raw := strings.TrimSpace(message)
	if raw == "" {
		return "Escríbeme tu consulta y te ayudo 🙂"
	}
	msg := NormalizeText(raw)

	// Greeting / general help
	if containsAny(msg, "hola", "buenas", "buenos dias", "buenas tardes", "ayuda") {
		return "¡Hola! 👋 Soy el asistente de PilatesReserva. " +
			"Puedo ayudarte con *horarios*, *ubicación/dirección*, *tipos de clases*, " +
			"*precios* y *cómo reservar*."
	}

	// Location
	if containsAny(msg, "ubicacion", "direccion", "donde estan", "donde quedan") {
		txt := fmt.Sprintf("Estamos en %s.", s.cfg.ChatbotAddress)
		if s.cfg.ChatbotMapURL != "" {
			txt += " Ver mapa: " + s.cfg.ChatbotMapURL
		}
		return txt
	}

	// Class types
	if (strings.Contains(msg, "tipo") && strings.Contains(msg, "clase")) ||
		containsAny(msg, "modalidad", "clases") {
		return s.classTypes()
	}

	// Schedules / upcoming classes, filtered by type when the message names one
	if containsAny(msg, "horario", "agenda", "cuando") {
		return s.upcomingClasses(msg)
	}

	// Prices / plans
	if containsAny(msg, "precio", "valores", "costo", "planes", "membresia") {
		return s.cfg.ChatbotPrices
	}

	// How to book
	if containsAny(msg, "reserv", "inscrib", "agendar") {
		return "Para reservar, crea tu cuenta e inicia sesión. " +
			"Luego ve a *Clases* y elige el horario que prefieras. " +
			"Si necesitas ayuda te guiamos por WhatsApp."
	}

	// Contact
	if containsAny(msg, "telefono", "whatsapp", "contacto") {
		return fmt.Sprintf("Puedes escribirnos por WhatsApp al %s o al correo contacto@pilatesreserva.cl.", s.cfg.ChatbotPhone)
	}

	// Quick FAQ: every word of the key must appear
	for _, entry := range quickFAQ {
		match := true
		for _, w := range strings.Fields(entry.key) {
			if !strings.Contains(msg, w) {
				match = false
				break
			}
		}
		if match {
			return entry.answer
		}
	}

	// KB keyword match, then fuzzy similarity against canonical questions
	for _, entry := range faqKB {
		if containsAny(msg, entry.keywords...) {
			return entry.answer
		}
	}
	bestScore, bestAnswer := 0.0, ""
	for _, entry := range faqKB {
		for _, q := range entry.questions {
			if score := similarity(msg, NormalizeText(q)); score > bestScore {
				bestScore, bestAnswer = score, entry.answer
			}
		}
	}
	if bestScore >= fuzzyThreshold {
		return bestAnswer
	}

	return genericHelp
}

// classTypes prefers the curated list from config and otherwise derives the
// offering from upcoming class names in the database.
func (s *chatbotService) classTypes() string {
	if s.cfg.ChatbotClassTypes != "" {
		var curated []string
		for _, t := range strings.Split(s.cfg.ChatbotClassTypes, ",") {
			if t = strings.TrimSpace(t); t != "" {
				curated = append(curated, t)
			}
		}
		if len(curated) > 0 {
			return "Ofrecemos estas clases:\n• " + strings.Join(curated, "\n• ")
		}
	}

	names, err := s.classRepo.DistinctNamesFrom(today())
	if err != nil {
		log.Printf("chatbot: listing class names: %v", err)
		return "Tenemos clases Mat, Reformer y grupales. ¿Cuál te interesa?"
	}

	niceMap := []struct{ key, nice string }{
		{"reformer", "Reformer"},
		{"fullpower", "Full Power"},
		{"full power", "Full Power"},
		{"mat", "Mat"},
		{"grupal", "Grupal"},
		{"grupo", "Grupal"},
	}

	seen := map[string]bool{}
	var cleaned []string
	for _, n := range names {
		key := NormalizeText(n)
		pretty := ""
		for _, m := range niceMap {
			if strings.Contains(key, m.key) {
				pretty = m.nice
				break
			}
		}
		if pretty == "" {
			if n == "" {
				n = "Clase de Pilates"
			}
			pretty = titleCaser.String(n)
		}
		if dedup := NormalizeText(pretty); !seen[dedup] {
			seen[dedup] = true
			cleaned = append(cleaned, pretty)
		}
	}
	if len(cleaned) == 0 {
		return "Tenemos clases Mat, Reformer y grupales. ¿Cuál te interesa?"
	}
	return "Ofrecemos estas clases:\n• " + strings.Join(cleaned, "\n• ")
}

func (s *chatbotService) upcomingClasses(msg string) string {
	classType := detectClassType(msg)

	cacheKey := "upcoming:" + classType
	if s.cache != nil {
		if reply, err := s.cache.GetChatReply(cacheKey); err == nil {
			return reply
		}
	}

	from := today()
	to := from.AddDate(0, 0, chatLookaheadDays)
	classes, err := s.classRepo.GetBetween(from, to, classType, chatMaxResults)
	if err != nil {
		log.Printf("chatbot: listing upcoming classes: %v", err)
		return genericHelp
	}

	var reply string
	if len(classes) == 0 {
		if classType != "" {
			reply = fmt.Sprintf("No hay clases de %s en los próximos %d días. ¿Quieres otra modalidad?",
				titleCaser.String(classType), chatLookaheadDays)
		} else {
			reply = fmt.Sprintf("No hay clases publicadas en los próximos %d días. ¡Pronto habrá más!", chatLookaheadDays)
		}
	} else {
		var rows []string
		for _, c := range classes {
			name := c.Name
			if name == "" {
				name = "Clase de Pilates"
			}
			row := fmt.Sprintf("%s %s — %s", c.Date.Format("02-01-2006"), c.StartTime, titleCaser.String(name))
			if c.Instructor != "" {
				row += " · Instructor/a: " + c.Instructor
			}
			rows = append(rows, "• "+row)
		}
		header := "Próximas clases:\n"
		if classType != "" {
			header = fmt.Sprintf("Próximas clases de %s:\n", titleCaser.String(classType))
		}
		reply = header + strings.Join(rows, "\n")
	}

	if s.cache != nil {
		ttl := time.Duration(s.cfg.ChatCacheTTL) * time.Second
		if err := s.cache.SetChatReply(cacheKey, reply, ttl); err != nil {
			log.Printf("chatbot: caching reply: %v", err)
		}
	}
	return reply
}

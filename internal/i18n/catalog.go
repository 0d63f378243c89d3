package i18n

// UI message keys.
const (
	KeyNoMatches       = "No matches found with the selected filters."
	KeyOutOfRange      = "One or more tenant IDs are out of range."
	KeyOverallFallback = "These matches are based on overall lifestyle compatibility."
	KeyAttribute       = "ATTRIBUTE"
	KeySharedTraits    = "Shared Traits"
	KeySimilarity      = "Similarity (%)"
	KeyTenantID        = "Tenant ID"
)

var ui = map[Locale]map[string]string{
	Spanish: {
		"Tenant 1 ID":                 "Inquilino 1",
		"Tenant 2 ID":                 "Inquilino 2",
		"Tenant 3 ID":                 "Inquilino 3",
		"How many new matches?":       "¿Cuántas coincidencias nuevas?",
		"Only show non-smokers":       "Solo mostrar no fumadores",
		"Only show healthy eaters":    "Solo mostrar quienes siguen dieta",
		"Exclude pet allergies":       "Excluir alergias a mascotas",
		"FIND MATCHES":                "🔍 Buscar coincidencias",
		"Match Setup":                 "Configuración de coincidencia",
		"Match Scores":                "Puntajes de coincidencia",
		"Profile Comparison":          "Comparación de perfiles",
		"Why These Matches?":          "¿Por qué estas coincidencias?",
		"Optional Filters":            "Filtros opcionales",
		"Compatibility Results":       "Resultados de compatibilidad",
		"Export Files":                "Exportar archivos",
		"Results CSV":                 "CSV de resultados",
		KeySharedTraits:               "Principales rasgos compartidos",
		"Download":                    "Descargar",
		KeyNoMatches:                  "No se encontraron coincidencias con los filtros seleccionados.",
		KeyOutOfRange:                 "Uno o más IDs de inquilino están fuera de rango.",
		KeyOverallFallback:            "Estas coincidencias se basan en la compatibilidad general de estilo de vida.",
		"Expand comparison table":     "Expandir tabla de comparación",
		KeyAttribute:                  "ATRIBUTO",
		KeySimilarity:                 "Similitud (%)",
		KeyTenantID:                   "ID Inquilino",
	},
}

var attributes = map[Locale]map[string]string{
	English: {
		"sleep_schedule": "Sleep Schedule", "work_shift": "Work Shift",
		"energy_rhythm": "Energy Rhythm", "education_level": "Education Level",
		"budget": "Budget (€)", "languages_spoken": "Languages Spoken",
		"social_level": "Social Level", "cleanliness_rating": "Cleanliness Rating",
		"likes_reading": "Likes Reading", "likes_cooking": "Likes Cooking",
		"cooking_preference": "Cooking Preference", "on_diet": "On Diet",
		"smoker": "Smoker", "likes_pets": "Likes Pets",
		"pet_allergy": "Pet Allergy", "frequent_visits": "Frequent Visits",
		"remote_worker": "Remote Worker", "plays_sports": "Plays Sports",
		"listens_loud_music":    "Listens to Loud Music",
		"preferred_music_genre": "Preferred Music Genre",
		"ideal_weekend_plan":    "Ideal Weekend Plan",
		"shares_common_items":   "Shares Common Items",
		"relationship_status":   "Relationship Status",
		"noise_tolerance":       "Noise Tolerance",
	},
	Spanish: {
		"sleep_schedule": "Horario de sueño", "work_shift": "Turno laboral",
		"energy_rhythm": "Ritmo energético", "education_level": "Nivel educativo",
		"budget": "Presupuesto (€)", "languages_spoken": "Idiomas hablados",
		"social_level": "Nivel social", "cleanliness_rating": "Valor de limpieza",
		"likes_reading": "Le gusta leer", "likes_cooking": "Le gusta cocinar",
		"cooking_preference": "Preferencia culinaria", "on_diet": "Sigue dieta",
		"smoker": "Fumador", "likes_pets": "Le gustan las mascotas",
		"pet_allergy": "Alergia a mascotas", "frequent_visits": "Visitas frecuentes",
		"remote_worker": "Teletrabaja", "plays_sports": "Practica deporte",
		"listens_loud_music":    "Escucha música alta",
		"preferred_music_genre": "Género musical preferido",
		"ideal_weekend_plan":    "Plan ideal de fin de semana",
		"shares_common_items":   "Comparte artículos comunes",
		"relationship_status":   "Relación sentimental",
		"noise_tolerance":       "Tolerancia al ruido",
	},
}

var values = map[Locale]map[string]string{
	Spanish: {
		"Yes": "Sí", "No": "No",
		"Early bird": "Madrugador", "Balanced": "Equilibrado", "Night owl": "Nocturno",
		"Morning": "Mañana", "Afternoon": "Tarde", "Night": "Noche", "Flexible": "Flexible",
		"High": "Alta", "Medium": "Media", "Low": "Baja",
		"Italian": "Italiano", "Spanish": "Español", "English": "Inglés", "German": "Alemán", "French": "Francés",
		"High School": "Secundaria", "Bachelor's": "Grado", "Master's": "Máster", "PhD": "Doctorado",
		"Extrovert": "Extrovertido", "Introvert": "Introvertido",
		"Order": "Orden", "Cook": "Cocinar",
		"Pop": "Pop", "Techno": "Techno", "Reggaeton": "Reguetón", "Classical": "Clásica",
		"Jazz": "Jazz", "Rock": "Rock", "Chill": "Relajada",
		"Family Time": "Tiempo en familia", "Hike": "Excursión", "Party": "Fiesta", "Travel": "Viajar",
		"Relationship": "Relación", "Single": "Soltero/a",
		"None": "Ninguno",
	},
}

var traits = map[Locale]map[string]string{
	English: {
		"likes_pets": "Likes Pets", "smoker": "Non-smoker", "on_diet": "On Diet",
		"remote_worker": "Remote Worker", "cooking_preference": "Cooking Preference",
		"ideal_weekend_plan": "Ideal Weekend Plan", "relationship_status": "Relationship Status",
		"sleep_schedule": "Sleep Schedule", "social_level": "Social Level",
		"education_level": "Education Level", "listens_loud_music": "Loud Music",
		"cleanliness_rating": "Cleanliness", "pet_allergy": "No Pet Allergy",
		"noise_tolerance": "Noise Tolerance",
	},
	Spanish: {
		"likes_pets": "Le gustan las mascotas", "smoker": "No fumador", "on_diet": "Sigue dieta",
		"remote_worker": "Teletrabaja", "cooking_preference": "Preferencia culinaria",
		"ideal_weekend_plan": "Plan ideal de fin de semana", "relationship_status": "Relación sentimental",
		"sleep_schedule": "Horario de sueño", "social_level": "Nivel social",
		"education_level": "Nivel educativo", "listens_loud_music": "Música alta",
		"cleanliness_rating": "Valor de limpieza", "pet_allergy": "Sin alergia a mascotas",
		"noise_tolerance": "Tolerancia al ruido",
	},
}

var traitIcons = map[string]string{
	"likes_pets": "🐶", "smoker": "🚭", "on_diet": "🥗", "remote_worker": "💻",
	"cooking_preference": "🍳", "ideal_weekend_plan": "🏞️", "relationship_status": "❤️",
	"sleep_schedule": "🛏️", "social_level": "🗣️", "education_level": "🎓",
	"listens_loud_music": "🎧", "cleanliness_rating": "🧼", "pet_allergy": "🐾",
	"noise_tolerance": "🔇",
}

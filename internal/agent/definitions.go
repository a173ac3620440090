package agent

import "github.com/futig/scamper-backend/internal/entity"

// Definition is everything that makes one technique agent different from another
type Definition struct {
	Technique      entity.Technique
	Name           string
	Description    string
	Specialization string
	FocusAreas     []string

	// Prompt: "Aplica la técnica SCAMPER de <PromptVerb>" plus the guiding questions
	PromptVerb      string
	PromptQuestions []string

	// Explanation shown next to the ideas
	AnalystName          string
	ExplanationQuestions []string
	ExplanationClosing   string

	// Noun used in error messages ("sustitución", "combinación", ...)
	ErrorNoun string
}

// Definitions returns the seven agents in reporting order
func Definitions() []Definition {
	return []Definition{
		{
			Technique:      entity.TechniqueSubstitute,
			Name:           "Substitute Agent",
			Description:    "Especialista en encontrar elementos que se pueden reemplazar o intercambiar",
			Specialization: "Identificación de elementos sustituibles",
			FocusAreas: []string{
				"Materiales alternativos",
				"Procesos de reemplazo",
				"Tecnologías sustitutivas",
				"Enfoques diferentes",
				"Recursos alternativos",
			},
			PromptVerb: "SUSTITUIR",
			PromptQuestions: []string{
				"¿Qué se puede sustituir?",
				"¿Qué materiales, procesos o elementos se pueden reemplazar?",
				"¿Qué alternativas existen?",
			},
			AnalystName: "El Agente de Sustitución",
			ExplanationQuestions: []string{
				"¿Qué elementos actuales se pueden reemplazar por alternativas mejores?",
				"¿Qué materiales, procesos o componentes tienen sustitutos disponibles?",
				"¿Qué aspectos tradicionales se pueden intercambiar por enfoques modernos?",
				"¿Qué personas, roles o responsabilidades se pueden redistribuir?",
			},
			ExplanationClosing: "Esta técnica busca identificar oportunidades de mejora reemplazando lo existente por algo diferente.",
			ErrorNoun:          "sustitución",
		},
		{
			Technique:      entity.TechniqueCombine,
			Name:           "Combine Agent",
			Description:    "Especialista en fusionar ideas, elementos y conceptos para crear sinergias",
			Specialization: "Fusión sinérgica de elementos",
			FocusAreas: []string{
				"Unión de funcionalidades",
				"Integración de sistemas",
				"Fusión de recursos",
				"Combinación de ideas",
				"Sinergias creativas",
			},
			PromptVerb: "COMBINAR",
			PromptQuestions: []string{
				"¿Qué se puede combinar o fusionar?",
				"¿Qué ideas, funciones o características se pueden unir?",
				"¿Qué sinergias se pueden crear?",
			},
			AnalystName: "El Agente de Combinación",
			ExplanationQuestions: []string{
				"¿Qué elementos separados se pueden fusionar para crear valor?",
				"¿Qué funciones diferentes se pueden unir en una sola solución?",
				"¿Qué ideas independientes pueden trabajar juntas sinérgicamente?",
				"¿Qué recursos o capacidades se pueden combinar para mayor eficiencia?",
			},
			ExplanationClosing: "Esta técnica busca crear soluciones más poderosas mediante la fusión estratégica de elementos.",
			ErrorNoun:          "combinación",
		},
		{
			Technique:      entity.TechniqueAdapt,
			Name:           "Adapt Agent",
			Description:    "Especialista en adaptar soluciones exitosas de otros contextos",
			Specialization: "Adaptación cross-industry y contextual",
			FocusAreas: []string{
				"Transferencia entre industrias",
				"Modernización de métodos clásicos",
				"Adaptación cultural",
				"Aplicación de mejores prácticas",
				"Inspiración cross-funcional",
			},
			PromptVerb: "ADAPTAR",
			PromptQuestions: []string{
				"¿Qué se puede adaptar de otros contextos?",
				"¿Qué soluciones de otras industrias se pueden aplicar?",
				"¿Qué se puede copiar o modificar de ideas existentes?",
			},
			AnalystName: "El Agente de Adaptación",
			ExplanationQuestions: []string{
				"¿Qué soluciones exitosas de otras industrias se pueden adaptar?",
				"¿Qué enfoques del pasado se pueden modernizar para este contexto?",
				"¿Qué prácticas de otros campos se pueden aplicar aquí?",
				"¿Qué métodos de culturas o regiones diferentes son transferibles?",
			},
			ExplanationClosing: "Esta técnica busca aprovechar el conocimiento existente adaptándolo creativamente.",
			ErrorNoun:          "adaptación",
		},
		{
			Technique:      entity.TechniqueModify,
			Name:           "Modify Agent",
			Description:    "Especialista en modificar, amplificar, reducir e intensificar elementos",
			Specialization: "Optimización mediante modificación de escalas",
			FocusAreas: []string{
				"Amplificación estratégica",
				"Reducción eficiente",
				"Intensificación de características",
				"Cambios de velocidad/ritmo",
				"Ajustes de proporción",
			},
			PromptVerb: "MODIFICAR/MAGNIFICAR",
			PromptQuestions: []string{
				"¿Qué se puede modificar, amplificar o exagerar?",
				"¿Qué se puede hacer más grande, pequeño, fuerte, rápido?",
				"¿Qué características se pueden intensificar?",
			},
			AnalystName: "El Agente de Modificación",
			ExplanationQuestions: []string{
				"¿Qué aspectos se pueden amplificar o hacer más grandes/intensos?",
				"¿Qué elementos se pueden reducir o minimizar para mayor eficiencia?",
				"¿Qué características se pueden hacer más rápidas, lentas, fuertes o suaves?",
				"¿Qué componentes se pueden exagerar o suavizar estratégicamente?",
			},
			ExplanationClosing: "Esta técnica busca optimizar mediante cambios de escala, intensidad y proporción.",
			ErrorNoun:          "modificación",
		},
		{
			Technique:      entity.TechniquePutToOtherUses,
			Name:           "Other Uses Agent",
			Description:    "Especialista en encontrar nuevas aplicaciones y mercados para elementos existentes",
			Specialization: "Identificación de aplicaciones alternativas",
			FocusAreas: []string{
				"Nuevos mercados objetivo",
				"Usos no convencionales",
				"Aplicaciones derivadas",
				"Reutilización creativa",
				"Expansión de propósitos",
			},
			PromptVerb: "OTROS USOS",
			PromptQuestions: []string{
				"¿Para qué más se puede usar?",
				"¿Qué otros mercados o aplicaciones podría tener?",
				"¿Cómo se puede reutilizar de forma diferente?",
			},
			AnalystName: "El Agente de Otros Usos",
			ExplanationQuestions: []string{
				"¿Para qué otros propósitos se pueden usar los elementos existentes?",
				"¿Qué nuevos mercados o audiencias podrían beneficiarse de esto?",
				"¿Cómo se puede reutilizar de maneras no convencionales?",
				"¿Qué aplicaciones secundarias o derivadas son posibles?",
			},
			ExplanationClosing: "Esta técnica busca maximizar el valor encontrando múltiples aplicaciones para los recursos.",
			ErrorNoun:          "otros usos",
		},
		{
			Technique:      entity.TechniqueEliminate,
			Name:           "Eliminate Agent",
			Description:    "Especialista en simplificar, reducir y eliminar elementos innecesarios",
			Specialization: "Simplificación y eliminación estratégica",
			FocusAreas: []string{
				"Reducción de complejidad",
				"Eliminación de redundancias",
				"Simplificación de procesos",
				"Remoción de obstáculos",
				"Optimización minimalista",
			},
			PromptVerb: "ELIMINAR",
			PromptQuestions: []string{
				"¿Qué se puede eliminar, simplificar o reducir?",
				"¿Qué es innecesario o redundante?",
				"¿Cómo se puede hacer más minimalista?",
			},
			AnalystName: "El Agente de Eliminación",
			ExplanationQuestions: []string{
				"¿Qué elementos son innecesarios y se pueden quitar completamente?",
				"¿Qué procesos redundantes se pueden eliminar para mayor eficiencia?",
				"¿Qué complejidades se pueden simplificar o reducir?",
				"¿Qué obstáculos o fricciones se pueden remover del sistema?",
			},
			ExplanationClosing: "Esta técnica busca la elegancia y eficiencia mediante la simplificación estratégica.",
			ErrorNoun:          "eliminación",
		},
		{
			Technique:      entity.TechniqueReverse,
			Name:           "Reverse Agent",
			Description:    "Especialista en invertir, reorganizar y abordar desde perspectivas opuestas",
			Specialization: "Pensamiento contrario y reorganización estratégica",
			FocusAreas: []string{
				"Inversión de perspectivas",
				"Reorganización de secuencias",
				"Intercambio de roles",
				"Enfoques contraintuitivos",
				"Restructuración de flujos",
			},
			PromptVerb: "INVERTIR/REORGANIZAR",
			PromptQuestions: []string{
				"¿Qué se puede invertir, reorganizar o hacer al revés?",
				"¿Qué pasaría si cambiamos el orden o la secuencia?",
				"¿Cómo se puede abordar desde el extremo opuesto?",
			},
			AnalystName: "El Agente de Inversión",
			ExplanationQuestions: []string{
				"¿Qué pasaría si abordamos esto desde el extremo completamente opuesto?",
				"¿Cómo se puede reorganizar la secuencia o el orden de los elementos?",
				"¿Qué sucede si invertimos los roles, responsabilidades o flujos?",
				"¿Qué perspectivas contraintuitivas pueden revelar nuevas soluciones?",
			},
			ExplanationClosing: "Esta técnica busca breakthrough insights mediante el pensamiento contrario y la reorganización.",
			ErrorNoun:          "inversión",
		},
	}
}

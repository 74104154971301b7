package script

import (
	"strings"

	"github.com/hawk-wild/GEN-AI-video-generation/internal/model"
)

// Sections maps a category name to its summary
type Sections map[string]string

// sectionOrder lists the categories the template has a slot for
var sectionOrder = []string{
	model.CategoryFounding,
	model.CategoryMilestones,
	model.CategoryCampus,
	model.CategoryCulture,
	model.CategoryAcademic,
	model.CategoryAlumni,
}

const documentaryTemplate = `🎬 **VIDEO SCRIPT — "100 Years of IIT(ISM) Dhanbad"**

**INTRO**
For nearly a century, IIT(ISM) Dhanbad has stood as one of India’s most iconic institutions, evolving from a mining school into an IIT that shaped leaders, researchers, and pioneers.

---

**1️⃣ Founding & Heritage**
{Founding_and_Heritage}

---

**2️⃣ Milestones & Evolution**
{Milestones_and_Evolution}

---

**3️⃣ Campus Infrastructure**
{Campus_Infrastructure}

---

**4️⃣ Student Culture & Festivals**
{Student_Culture}

---

**5️⃣ Academic Excellence & Research**
{Academic_Excellence}

---

**6️⃣ Notable Alumni**
{Notable_Alumni}

---

**OUTRO**
A century later, IIT(ISM) continues to honour its heritage while driving innovation and national impact.
This is the legacy of ISM, an institution built on courage, knowledge, and exploration.
`

// SectionSlots returns the category names the template has a slot for, in order
func SectionSlots() []string {
	out := make([]string, len(sectionOrder))
	copy(out, sectionOrder)
	return out
}

// Render substitutes sections into the documentary template in a single
// pass. Replacement text is never rescanned, so a summary containing a
// placeholder is written as is. Slots without a section get Placeholder.
func Render(sections Sections) string {
	pairs := make([]string, 0, len(sectionOrder)*2)
	for _, name := range sectionOrder {
		text, ok := sections[name]
		if !ok {
			text = Placeholder
		}
		pairs = append(pairs, "{"+name+"}", text)
	}

	return strings.NewReplacer(pairs...).Replace(documentaryTemplate)
}

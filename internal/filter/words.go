package filter

import (
	"strings"

	"github.com/retroenv/retrogolib/set"
)

// commonWords contains frequent English words and typical game vocabulary.
var commonWords = newWordSet(`
the be to of and a in that have i it for not on with he as you do at this but his by from they we
say her she or an will my one all would there their what so up out if about who get which go me when
make can like time no just him know take people into year your good some could them see other than
then now look only come its over think also back after use two how our work first well way even new
want because any these give day most us was were been being am are is has had having did does done
doing said says saying made makes making here where why each such much many few several between
during before above below through under against within without shall may must should might need room
email chain document draft common action sent date address subject matter type count page log office
company meeting report project review response request notice letter file record number reference
yes ok okay hello hi bye thank thanks please sorry welcome again still very too really never always
ever let lets got went gone came going coming find found keep kept tell told ask asked call called
try tried leave left right down north south east west open close opened closed help hear heard feel
felt seem seemed turn show shown play played run ran walk walked talk talked stop stopped wait
waited start started end ended man woman men women boy girl child children king queen prince
princess lord lady sir father mother brother sister friend friends enemy enemies hero heroes monster
monsters dragon dragons sword swords shield shields magic spell spells power powers life lives death
dead alive world town city village castle tower cave forest sea river mountain island house home
door key keys chest gold money item items shop inn weapon weapons armor potion potions level levels
score points game continue save saved load loaded select press option options sound music exit pause
quit player players stage round bonus extra lost win won lose attack defend escape equip buy sell
gave took hp mp exp defense speed three four five six seven eight nine ten hundred thousand second
third last next bad great small big little long short old young high low fast slow strong weak dark
light true false something nothing anything everything someone everyone anyone nobody somewhere
everywhere i'm you're it's don't can't won't isn't aren't wasn't didn't doesn't that's there's
what's let's
`)

func newWordSet(list string) set.Set[string] {
	words := set.New[string]()
	for _, word := range strings.Fields(list) {
		words.Add(word)
	}
	return words
}
